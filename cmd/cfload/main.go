// cfload loads a certainty-factor rule base and fact base from their text
// files, optionally runs validation passes, and prints the resulting model
// to stdout. All errors and diagnostics go to stderr so stdout stays
// machine-parseable. Exit code 0 on a clean load, 1 on any fatal error.
//
// Usage:
//
//	cfload -rules Prueba-1.reglas -facts Prueba-1.hechos
//	cfload -config cfkb.yaml -check-unique -db snapshots.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/cfkb/pkg/cfkb"
	"github.com/cognicore/cfkb/pkg/cfkb/config"
	"github.com/cognicore/cfkb/pkg/cfkb/store"
	"github.com/cognicore/cfkb/pkg/cfkb/store/sqlite"
	"github.com/cognicore/cfkb/pkg/cfkb/validate"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	var (
		rulesPath   = flag.String("rules", "", "path to the rules file")
		factsPath   = flag.String("facts", "", "path to the facts file")
		configPath  = flag.String("config", "", "optional YAML config file")
		dbPath      = flag.String("db", "", "optional SQLite file to snapshot the loaded model into")
		checkUnique = flag.Bool("check-unique", false, "warn about duplicate rule ids")
		checkRange  = flag.Bool("check-range", false, "warn about certainty factors outside [-1, 1]")
		quiet       = flag.Bool("quiet", false, "suppress the model dump on stdout")
	)
	flag.Parse()

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	// Flags override the config file.
	if *rulesPath != "" {
		cfg.RulesPath = *rulesPath
	}
	if *factsPath != "" {
		cfg.FactsPath = *factsPath
	}
	if *dbPath != "" {
		cfg.SnapshotDB = *dbPath
	}
	if *checkUnique {
		cfg.Validate.UniqueRuleIDs = true
	}
	if *checkRange {
		cfg.Validate.CertaintyRange = true
	}

	if cfg.RulesPath == "" || cfg.FactsPath == "" {
		log.Println("both -rules and -facts are required (flags or config file)")
		flag.Usage()
		os.Exit(1)
	}

	sys, err := cfkb.LoadFiles(cfg.RulesPath, cfg.FactsPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	for _, d := range sys.Diagnostics {
		log.Printf("warning: %s", d)
	}
	for _, p := range validate.Rules(sys.KB, cfg.Validate) {
		log.Printf("validate: %s", p)
	}
	for _, p := range validate.Facts(sys.Facts, cfg.Validate) {
		log.Printf("validate: %s", p)
	}

	if !*quiet {
		if err := sys.KB.Format(os.Stdout); err != nil {
			log.Fatalf("write model: %v", err)
		}
		if err := sys.Facts.Format(os.Stdout); err != nil {
			log.Fatalf("write model: %v", err)
		}
	}

	if cfg.SnapshotDB != "" {
		if err := saveSnapshot(cfg.SnapshotDB, sys); err != nil {
			log.Fatalf("snapshot: %v", err)
		}
	}
}

func saveSnapshot(path string, sys *cfkb.System) error {
	ctx := context.Background()
	st, err := sqlite.Open(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()

	snap := store.NewBuilder().Snapshot(sys.KB, sys.Facts)
	if err := st.SaveSnapshot(ctx, snap); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved snapshot %s (%d rules, %d facts)\n", snap.ID, len(snap.Rules), len(snap.Facts))
	return nil
}
