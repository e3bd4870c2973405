package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/kenshaw/c64run/internal/apple2"
	"github.com/kenshaw/c64run/internal/ioutil"
)

func main() {
	app := &cli.App{
		Name:    "a2dsk",
		Usage:   "inspect and extract files from an Apple II DOS 3.3 disk image",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dsk",
				Aliases: []string{"d"},
				Usage:   "path to the .dsk image",
			},
			&cli.StringFlag{
				Name:    "extract",
				Aliases: []string{"x"},
				Usage:   "catalog name of a file to extract",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output path for --extract (binary files) or stdout if omitted",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "BASIC-detokenize the extracted file instead of dumping raw bytes",
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func run(c *cli.Context) error {
	dskPath := c.String("dsk")
	if dskPath == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("", 86)
	}

	data, err := ioutil.ReadExact(dskPath, apple2.ImageSize)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	img, err := apple2.NewImage(data)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	entries, err := img.Catalog()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	name := c.String("extract")
	if name == "" {
		printCatalog(entries)
		return nil
	}

	var target *apple2.CatalogEntry
	for i := range entries {
		if entries[i].Name == name {
			target = &entries[i]
			break
		}
	}
	if target == nil {
		return cli.Exit(fmt.Sprintf("a2dsk: no file named %q on this image", name), 1)
	}

	body, err := img.ExtractFile(*target)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	out := os.Stdout
	outPath := c.String("out")
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer f.Close()
		out = f
	}

	if !c.Bool("list") {
		_, err := out.Write(body)
		return err
	}

	letter, _, err := apple2.FileTypeLetter(target.Type)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	var text string
	switch letter {
	case 'I':
		text, err = apple2.ListIntegerBasic(body)
	case 'A':
		text, err = apple2.ListApplesoft(body)
	default:
		return cli.Exit(fmt.Sprintf("a2dsk: --list is only supported for Integer and Applesoft BASIC files, not type %c", letter), 1)
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintln(out, text)
	return nil
}

func printCatalog(entries []apple2.CatalogEntry) {
	for _, e := range entries {
		letter, locked, err := apple2.FileTypeLetter(e.Type)
		if err != nil {
			letter = '?'
		}
		lockMark := " "
		if locked {
			lockMark = "*"
		}
		fmt.Printf("%3d %s%c %s\n", e.SectorCount, lockMark, letter, e.Name)
	}
}
