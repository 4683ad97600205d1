package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const complete = `#! /bin/bash

_segfact_autocomplete() {
    local cur opts
    cur="${COMP_WORDS[COMP_CWORD]}"

    # segfact lists the commands and flags valid at the cursor
    opts=$( "${COMP_WORDS[@]:0:$COMP_CWORD}" --generate-bash-completion 2>/dev/null )

    if [ $? -eq 0 ]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
}

complete -F _segfact_autocomplete segfact
`

func bashCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "bash",
		Usage: "print the bash completion script",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprint(ui.Out, complete)
			return err
		},
	}
}
