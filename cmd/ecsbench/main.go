// Command ecsbench drives synthetic workloads through archecs worlds and
// prints a JSON report.
//
//	ecsbench --entities 100000 --iterations 100 --rounds 4
//	ECSBENCH_ASSERT_POLICY=off ecsbench
package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edwinsyarief/archecs"
)

const (
	flagEntities     = "entities"
	flagIterations   = "iterations"
	flagRounds       = "rounds"
	flagWorkers      = "workers"
	flagPageSize     = "page-size"
	flagAssertPolicy = "assert-policy"
	flagLogLevel     = "log-level"
	flagPretty       = "pretty"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("ecsbench failed")
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "ecsbench",
		Short:        "Benchmark archetype worlds under structural churn and iteration",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := zerolog.ParseLevel(v.GetString(flagLogLevel))
			if err != nil {
				return err
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := benchOptions{
				Entities:   v.GetInt(flagEntities),
				Iterations: v.GetInt(flagIterations),
				Rounds:     v.GetInt(flagRounds),
				Workers:    v.GetInt(flagWorkers),
				Config: archecs.Config{
					InitialCapacity: v.GetInt(flagEntities),
					PageSize:        v.GetInt(flagPageSize),
					AssertPolicy:    v.GetString(flagAssertPolicy),
					LogLevel:        v.GetString(flagLogLevel),
				},
			}
			rep, err := runBench(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), rep, v.GetBool(flagPretty))
		},
	}

	flags := cmd.Flags()
	flags.Int(flagEntities, 10000, "entities per world")
	flags.Int(flagIterations, 100, "churn and query passes per round")
	flags.Int(flagRounds, 4, "independent worlds to run")
	flags.Int(flagWorkers, 0, "rounds run concurrently, 0 means one per round")
	flags.Int(flagPageSize, archecs.DefaultPageSize, "sparse page size of every dense store")
	flags.String(flagAssertPolicy, archecs.DefaultAssertPolicy, "precondition policy: panic, log or off")
	flags.String(flagLogLevel, "warn", "zerolog level")
	flags.Bool(flagPretty, false, "indent the JSON report")

	v.SetEnvPrefix("ECSBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	return cmd
}
