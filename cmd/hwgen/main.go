// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hwgen generates VHDL and Verilog for logic components.
//
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/db47h/hwgen/internal/cmd"
	"github.com/db47h/hwgen/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
