// Command bspatch applies a BSDIFF40 patch to a source file, writing the
// reconstructed target.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twotwotwo/bsdiff/patch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bspatch <source> <patch> <target>",
		Short: "Apply a bsdiff 4.x patch to source, producing target",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], args[2])
		},
	}
}

func run(sourcePath, patchPath, targetPath string) error {
	log := logrus.WithFields(logrus.Fields{
		"source": sourcePath,
		"patch":  patchPath,
		"target": targetPath,
	})

	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	patchFile, err := os.Open(patchPath)
	if err != nil {
		return err
	}
	defer patchFile.Close()

	out, err := os.Create(targetPath)
	if err != nil {
		return err
	}
	defer out.Close()

	log.Info("applying patch")
	if err := patch.Decode(sourceFile, patchFile, out); err != nil {
		log.WithError(err).Error("patch application failed")
		return err
	}
	log.Info("target written")
	return nil
}
