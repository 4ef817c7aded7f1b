// Example program demonstrating the commitizen init library API.
//
// Run from a project root that has no commitizen configuration yet:
//
//	go run github.com/MyCarrier-DevOps/go-commitizen/example
//
// Set CZ_EXAMPLE_HOOKS=1 to also install the pre-commit hooks.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/MyCarrier-DevOps/go-commitizen/pkg/sdk"
)

func main() {
	opts := sdk.InitOptions{
		Path:       ".",
		ConfigFile: ".cz.toml",
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
	if os.Getenv("CZ_EXAMPLE_HOOKS") != "" {
		opts.HookTypes = []string{sdk.HookTypeCommitMsg, sdk.HookTypePrePush}
	}

	result, err := sdk.Init(context.Background(), opts)
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}

	if result.AlreadyConfigured {
		fmt.Printf("Config file %s already exists\n", result.ConfigPath)
		return
	}

	fmt.Printf("Wrote %s\n", result.ConfigPath)
	fmt.Printf("  version:    %s\n", result.Version)
	fmt.Printf("  tag_format: %s\n", result.TagFormat)
	fmt.Printf("  hooks:      %t\n", result.HooksInstalled)
}
