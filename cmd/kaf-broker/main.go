// Command kaf-broker runs the broker-side Kafka wire-protocol endpoint:
// ApiVersions, DescribeTopicPartitions, and Fetch over a TCP listener,
// backed by a read-only KRaft metadata log.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/moband/kaf-broker/internal/broker"
	"github.com/moband/kaf-broker/internal/metadatalog"
	"github.com/moband/kaf-broker/internal/metrics"
	"github.com/moband/kaf-broker/internal/server"
	"github.com/moband/kaf-broker/pkg/logger"
)

const (
	defaultListenAddr = "127.0.0.1:9092"
	metadataLogPath   = "/tmp/kraft-combined-logs/__cluster_metadata-0/00000000000000000000.log"
	partitionLogRoot  = "/tmp/kraft-combined-logs"
)

func main() {
	var listen string

	root := &cobra.Command{
		Use:   "kaf-broker [properties-file]",
		Short: "Minimal broker-side Kafka wire-protocol endpoint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(listen, args)
		},
	}
	root.Flags().StringVar(&listen, "listen", defaultListenAddr, "address to bind the broker's TCP listener to")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// run starts the broker. The single positional argument is a properties
// file whose content is never parsed: only its presence gates whether the
// metadata log is loaded from its hard-coded path. A panic on a fatal error
// (bind failure, malformed log) is intentional: this broker has no
// supervisory restart logic of its own.
func run(listen string, args []string) error {
	log := logger.New(logger.INFO)

	metaLog := metadatalog.New(metadataLogPath)
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); err != nil {
			log.Error("properties file %s not usable: %v", args[0], err)
		} else if err := metaLog.Load(context.Background()); err != nil {
			panic(err)
		}
	}

	m := metrics.New()
	h := broker.New(metaLog, partitionLogRoot, m, log)

	srv := server.New(server.Config{BindAddr: listen}, h, log)
	if err := srv.Start(); err != nil {
		panic(err)
	}

	select {}
}
