package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/hijaydeep/Trivia-Game/internal/selfupdate"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update trivia to the latest release",
	RunE:  runUpdate,
}

func init() {
	f := updateCmd.Flags()
	f.String("tag", "", "Install this release tag instead of the latest")
	f.Bool("check", false, "Only report whether a newer release exists")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	tag, _ := cmd.Flags().GetString("tag")
	checkOnly, _ := cmd.Flags().GetBool("check")

	ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
	defer cancel()
	checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))

	if checkOnly {
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return err
		}
		if !res.UpdateAvailable {
			fmt.Printf("trivia %s is up to date.\n", version)
			return nil
		}
		fmt.Printf("trivia %s is available (running %s): %s\n", res.LatestVersion, version, res.ReleaseURL)
		return nil
	}

	_, err := checker.Update(ctx, selfupdate.UpdateOptions{
		CurrentVersion: version,
		TargetVersion:  tag,
		Progress:       func(_ selfupdate.Stage, msg string) { fmt.Println(msg) },
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Println("This is a development build; install a release build to use update.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Printf("Already on the latest release (%s).\n", version)
		return nil
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w\n\nTry running: sudo trivia update", err)
	}
	return err
}
