package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpadapter "svw.info/acosudoku/internal/adapters/http"
	"svw.info/acosudoku/internal/board"
	"svw.info/acosudoku/internal/domain"
	"svw.info/acosudoku/internal/usecase"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

func main() {
	addr := flag.String("addr", "", "serve the JSON API on this address instead of one-shot solving")
	puzzle := flag.String("puzzle", "", "one-line puzzle string, '.' for empty cells")
	blank := flag.Int("blank", 0, "solve an empty grid of this size (6, 9, 12, 16 or 25)")
	alg := flag.Int("alg", 0, "algorithm: 0=ACS 1=backtracking 2=DCM-ACO")
	ants := flag.Int("ants", 0, "ants per colony (0 = per-algorithm default)")
	numACS := flag.Int("num-acs", 0, "ACS colonies for DCM-ACO; total colonies is num-acs+1")
	q0 := flag.Float64("q0", 0, "greedy choice probability in [0,1]")
	rho := flag.Float64("rho", 0, "global evaporation factor in [0,1]")
	evap := flag.Float64("evap", 0, "reinforcement/local decay scale in [0,1]")
	convThresh := flag.Float64("conv-thresh", 0, "stagnation convergence-ratio threshold in [0,1]")
	entropyThresh := flag.Float64("entropy-thresh", 0, "stagnation entropy threshold (bits)")
	timeout := flag.Float64("timeout", 0, "solve deadline in seconds")
	seed := flag.Int64("seed", 0, "random seed (0 = time-derived)")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	verbose := flag.Bool("verbose", false, "print the solved grid with box rules")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	uc := usecase.NewService(logger)

	if *addr != "" {
		h := httpadapter.New(uc)
		mux := http.NewServeMux()
		h.Register(mux)
		srv := &http.Server{
			Addr:              *addr,
			Handler:           requestLogger(logger, mux),
			ReadHeaderTimeout: 5 * time.Second,
		}
		logger.Info("listening", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
		return
	}

	p := *puzzle
	if p == "" && *blank > 0 {
		p = strings.Repeat(".", *blank**blank)
	}
	if p == "" {
		fmt.Fprintln(os.Stderr, "no puzzle specified: use -puzzle, -blank or -addr")
		os.Exit(2)
	}

	req := domain.Request{
		Puzzle:        p,
		Algorithm:     domain.Algorithm(*alg),
		Ants:          *ants,
		NumACS:        *numACS,
		Q0:            *q0,
		Rho:           *rho,
		Evap:          *evap,
		ConvThresh:    *convThresh,
		EntropyThresh: *entropyThresh,
		Timeout:       *timeout,
		Seed:          *seed,
	}
	res := uc.Solve(context.Background(), req)
	if !res.Success {
		fmt.Printf("failed in %.3fs: %s\n", res.Time, res.Error)
		os.Exit(1)
	}
	if *verbose {
		if g, err := board.Parse(res.Solution); err == nil {
			fmt.Print(g.Pretty())
		}
	}
	fmt.Println(res.Solution)
	fmt.Printf("solved in %.3fs\n", res.Time)
}
