package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/temirov/blueprint/internal/cli"
	"github.com/temirov/blueprint/internal/types"
	"github.com/temirov/blueprint/internal/utils"
)

// main is the entry point for the blueprint command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		wrapped := fmt.Errorf("%w: %w", types.ErrDependencyUnavailable, loggerInitializationError)
		fmt.Fprintln(os.Stderr, fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, wrapped))
		os.Exit(1)
	}
	defer loggerInstance.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if applicationExecutionError := cli.Execute(ctx, loggerInstance); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
