package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/sir_venger/media_archive/pkg/archiveclient"
)

const (
	serverEnv       = "ARCHIVE_SERVER"
	defaultServer   = "http://localhost:8080"
	defaultParallel = 2
)

func main() {
	server := flag.String("server", getenv(serverEnv, defaultServer), "archive server base URL")
	parallel := flag.Int("parallel", defaultParallel, "max concurrent uploads")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	cli := archiveclient.New()
	ctx := context.Background()

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "upload":
		if len(rest) == 0 {
			usage()
		}
		err = cli.UploadAll(ctx, *server, rest, *parallel)
	case "ls":
		var names []string
		names, err = cli.List(ctx, *server)
		for _, n := range names {
			fmt.Println(n)
		}
	case "get":
		if len(rest) == 0 {
			usage()
		}
		err = fetchToFile(ctx, cli, *server, rest[0], outPath(rest))
	case "rm":
		if len(rest) == 0 {
			usage()
		}
		for _, name := range rest {
			if err = cli.Remove(ctx, *server, name); err != nil {
				break
			}
		}
	default:
		usage()
	}

	if err != nil {
		log.Fatal(err)
	}
}

// fetchToFile скачивает файл архива в локальный путь.
func fetchToFile(ctx context.Context, cli archiveclient.Client, server, name, out string) error {
	rc, err := cli.Fetch(ctx, server, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(out)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func outPath(rest []string) string {
	if len(rest) > 1 {
		return rest[1]
	}

	return filepath.Base(rest[0])
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: archivectl [-server URL] [-parallel N] <command>

commands:
  upload <file> [file...]   загрузить файлы в архив
  ls                        показать содержимое архива
  get <name> [out]          скачать файл из архива
  rm <name> [name...]       удалить файлы из архива`)
	os.Exit(2)
}
