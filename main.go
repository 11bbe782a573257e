package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sumzero/agent"
	"sumzero/catalog"
	"sumzero/engine"
	"sumzero/game"
	"sumzero/saves"
)

type config struct {
	games   int
	rows    int
	cols    int
	shape   string
	verbose bool
	slot    string
}

func main() {
	cfg := config{}
	flag.IntVar(&cfg.games, "games", 5, "number of self-play games")
	flag.IntVar(&cfg.rows, "rows", 8, "board rows")
	flag.IntVar(&cfg.cols, "cols", 8, "board cols")
	flag.StringVar(&cfg.shape, "shape", "", "board shape: empty, plus or diamond")
	flag.BoolVar(&cfg.verbose, "v", false, "log every action")
	flag.StringVar(&cfg.slot, "save", "", "save the last finished game into this slot")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}
}

// run plays greedy vs random for the configured number of games and
// prints a small score table.
func run(cfg config) error {
	cat := catalog.New()
	gameCfg := game.DefaultConfig()
	gameCfg.Rows = cfg.rows
	gameCfg.Cols = cfg.cols
	gameCfg.Shape = cfg.shape

	wins := map[int]int{}
	var last *game.GameState
	for i := 0; i < cfg.games; i++ {
		e, err := engine.New(cat, gameCfg,
			agent.NewGreedy(uint64(i)*2+1),
			agent.NewRandom(uint64(i)*2+2))
		if err != nil {
			return err
		}
		final, err := e.Run()
		if err != nil {
			return err
		}
		st := final.Status()
		wins[st.Winner]++
		fmt.Printf("game %d: winner player %d (%d - %d)\n",
			i+1, st.Winner, st.Scores[1], st.Scores[2])
		last = final
	}
	fmt.Printf("greedy %d - %d random\n", wins[1], wins[2])

	if cfg.slot != "" && last != nil {
		doc, err := game.Save(last)
		if err != nil {
			return err
		}
		if err := saves.Write(cfg.slot, doc); err != nil {
			return err
		}
		log.Info().Str("slot", cfg.slot).Msg("saved final game")
	}
	return nil
}
