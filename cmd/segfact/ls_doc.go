package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/storage"
)

func lsDocCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "ls-doc",
		Usage: "list the docs of the repository",
		Action: func(c *cli.Context) error {
			var p Pool
			defer p.Close()

			repo, err := docRepository(c, &p)
			if err != nil {
				return err
			}
			return lsDoc(repo, ui)
		},
	}
}

func lsDoc(repo storage.DocReader, ui UI) error {
	docs, err := repo.List()
	if err != nil {
		return err
	}

	for _, doc := range docs {
		labels := ""
		if len(doc.Labels) > 0 {
			labels = " 🔖 " + strings.Join(doc.Labels, ", ")
		}
		fmt.Fprintf(ui.Out, "📖 %d %s%s\n", doc.Id, doc.Title, labels)
	}

	return nil
}
