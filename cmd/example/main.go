package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aligator/gocfb"
	"github.com/spf13/afero"
)

// main is just a example main to play with gocfb.
func main() {
	argsWithoutProg := os.Args[1:]
	if len(argsWithoutProg) <= 0 {
		fmt.Println("Please provide a filename and optionally the path of a stream.")
		os.Exit(1)
	}

	data, err := os.ReadFile(argsWithoutProg[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	cfb, err := gocfb.NewFs(data)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	header := cfb.Reader().Header()
	fmt.Printf("Opened compound file version %v with %v byte sectors\n\n", header.MajorVersion, cfb.Reader().SectorSize())

	afero.Walk(cfb, "", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			fmt.Println(err)
			return err
		}
		fmt.Printf("%q %v %v %v\n", path, info.IsDir(), info.Size(), info.ModTime())
		return nil
	})

	if len(argsWithoutProg) < 2 {
		return
	}

	file, err := cfb.Open(argsWithoutProg[1])
	if err != nil {
		fmt.Println("could not open the stream", err)
		os.Exit(1)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		fmt.Println("could not stat the stream", err)
		os.Exit(1)
	}

	buffer := make([]byte, 52)
	offset, err := file.Seek(9, io.SeekStart)
	if err != nil {
		fmt.Println("could not seek", err)
		os.Exit(1)
	}
	fmt.Println(offset, err)

	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		fmt.Println("could not read the stream", err)
		os.Exit(1)
	}
	fmt.Println(stat.Size(), n)
	fmt.Printf("\n\nContent of %q using an offset and small buffer:\n\n%q\n", stat.Name(), buffer[:n])
}
