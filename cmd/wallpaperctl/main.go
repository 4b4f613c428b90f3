// Command wallpaperctl controls a running frame server
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/aouyang1/pexelwallpaper/api/client"
)

const usage = `usage: wallpaperctl [-server url] <command>

commands:
  status                       show the current wallpaper and status
  settings                     show the configured collection
  configure <apiKey> <url>     switch to a Pexels collection
  reset                        forget the api key and use the default list
  pause | resume | next        control the rotation
`

func main() {
	server := flag.String("server", envOr("WALLPAPER_SERVER", "http://localhost:8080"), "frame server url")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, client.NewFrameClient(*server), flag.Args(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, fc *client.FrameClient, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage)
	}

	var (
		out any
		err error
	)
	switch cmd := args[0]; cmd {
	case "status":
		wallpaper, werr := fc.Wallpaper(ctx)
		if werr != nil {
			return werr
		}
		status, serr := fc.Status(ctx)
		if serr != nil {
			return serr
		}
		out = map[string]any{"wallpaper": wallpaper, "status": status}
	case "settings":
		out, err = fc.Settings(ctx)
	case "configure":
		if len(args) != 3 {
			return fmt.Errorf("configure needs <apiKey> <url>\n%s", usage)
		}
		out, err = fc.Configure(ctx, args[1], args[2])
	case "reset":
		out, err = fc.Reset(ctx)
	case "pause":
		out, err = fc.Pause(ctx)
	case "resume":
		out, err = fc.Resume(ctx)
	case "next":
		out, err = fc.Next(ctx)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
