/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/liverscreen/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "liverscreen",
		Usage: "LiverScreen - Liver Health Screening Calculator",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdScore,
			cmd.CmdBatch,
			cmd.CmdExtract,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
