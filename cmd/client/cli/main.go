package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophcourses/internal/client/cli"
	"github.com/dmitrijs2005/gophcourses/internal/client/client"
	"github.com/dmitrijs2005/gophcourses/internal/client/config"
	"github.com/dmitrijs2005/gophcourses/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	c, err := client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.Token)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer c.Close()

	args := flagx.Positional(os.Args[1:], []string{"-a", "-token", "-c", "-config"})
	if err := cli.NewApp(c, os.Stdin, os.Stdout).Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		c.Close()
		os.Exit(1)
	}

}
