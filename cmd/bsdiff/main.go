// Command bsdiff computes a BSDIFF40 patch from a source file to a
// target file. The diff engine itself lives in package bsdiff; this is
// a thin argument-parsing and file-I/O wrapper around it.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twotwotwo/bsdiff/bsdiff"
	"github.com/twotwotwo/bsdiff/patch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := bsdiff.Default()
	var chunkSize int
	var numJobs int
	var never bool

	cmd := &cobra.Command{
		Use:   "bsdiff <source> <target> <patch>",
		Short: "Compute a bsdiff 4.x patch from source to target",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case never:
				cfg.ParallelScheme = bsdiff.ParallelScheme{Kind: bsdiff.Never}
			case chunkSize > 0:
				cfg.ParallelScheme = bsdiff.ParallelScheme{Kind: bsdiff.ChunkSize, Size: chunkSize}
			case numJobs > 0:
				cfg.ParallelScheme = bsdiff.ParallelScheme{Kind: bsdiff.NumJobs, Size: numJobs}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(args[0], args[1], args[2], cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.SmallMatch, "small-match", cfg.SmallMatch, "matches no longer than this are treated as noise")
	cmd.Flags().IntVar(&cfg.MismatchCount, "mismatch-count", cfg.MismatchCount, "mismatch tolerance before anchoring a fresh match")
	cmd.Flags().IntVar(&cfg.LongSuffix, "long-suffix", cfg.LongSuffix, "bisect similarity scans above this match length")
	cmd.Flags().IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "bound on the packer's delta buffer")
	cmd.Flags().IntVar(&cfg.CompressionLevel, "compression", cfg.CompressionLevel, "bzip2 compression level, 0-9")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "parallel chunk size in bytes (0: use --jobs or auto)")
	cmd.Flags().IntVar(&numJobs, "jobs", 0, "parallel chunk count (0: use --chunk-size or auto)")
	cmd.Flags().BoolVar(&never, "sequential", false, "disable the parallel scheduler")

	return cmd
}

func run(sourcePath, targetPath, patchPath string, cfg bsdiff.Config) error {
	log := logrus.WithFields(logrus.Fields{
		"source": sourcePath,
		"target": targetPath,
		"patch":  patchPath,
	})

	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	targetFile, err := os.Open(targetPath)
	if err != nil {
		return err
	}
	defer targetFile.Close()

	out, err := os.Create(patchPath)
	if err != nil {
		return err
	}
	defer out.Close()

	log.WithField("compression_level", cfg.CompressionLevel).Info("computing patch")
	if err := patch.Encode(sourceFile, targetFile, cfg, out); err != nil {
		log.WithError(err).Error("patch computation failed")
		return err
	}
	log.Info("patch written")
	return nil
}
