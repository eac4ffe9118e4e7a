package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"docCrackerBackend/internal/adapter/pdfdoc"
	"docCrackerBackend/internal/adapter/ziparchive"
	"docCrackerBackend/internal/config"
	"docCrackerBackend/internal/core/alphabet"
	"docCrackerBackend/internal/core/domain"
	"docCrackerBackend/internal/core/service"
	"docCrackerBackend/internal/pkg/metrics"
	"docCrackerBackend/internal/port"
)

func main() {
	filePath := flag.String("f", "", "path of the encrypted document")
	docType := flag.String("t", "pdf", "document type: pdf or zip")
	positions := flag.String("p", "", "comma-separated alphabet per position, e.g. lower,lower,digits")
	flag.Parse()

	if *filePath == "" || *positions == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	settings := config.NewSettings()

	var (
		doc    port.DocumentHandle
		oracle port.UnlockOracle
	)
	switch *docType {
	case "pdf":
		doc, err = pdfdoc.Open(*filePath)
		oracle = pdfdoc.NewOracle()
	case "zip":
		doc, err = ziparchive.Open(*filePath)
		oracle = ziparchive.NewOracle()
	default:
		err = fmt.Errorf("unknown document type %q", *docType)
	}
	if err != nil {
		logger.Sugar().Fatalw("cannot open document", "error", err)
	}

	list, err := candidateList(*positions)
	if err != nil {
		logger.Sugar().Fatalw("bad alphabet spec", "error", err)
	}

	reporter, err := metrics.NewReporter(settings.MetricsLogPath)
	if err != nil {
		logger.Sugar().Fatalw("cannot open metrics log", "error", err)
	}
	defer reporter.Close()

	recovery := service.NewRecoveryService(oracle, logger, reporter)

	ctx := context.Background()
	job, err := recovery.StartRecovery(ctx, doc, list, domain.SearchSettings{
		LogInterval: settings.LogInterval,
	})
	if err != nil {
		logger.Sugar().Fatalw("cannot start recovery", "error", err)
	}

	outcome, err := recovery.AwaitOutcome(ctx, job.ID)
	if err != nil {
		logger.Sugar().Fatalw("recovery failed", "error", err)
	}

	switch outcome.Status {
	case domain.StatusFound:
		fmt.Printf("correct password: %q (%s attempts in %s)\n", outcome.Password, outcome.Attempts, outcome.Elapsed)
	default:
		fmt.Printf("all %s passwords failed (%s)\n", outcome.Attempts, outcome.Elapsed)
	}
}

// candidateList maps position names to charsets. A position that names no
// known charset is taken literally, one symbol per rune.
func candidateList(positions string) (alphabet.CandidateList, error) {
	named := map[string]string{
		"lower":   domain.CharsetLower,
		"upper":   domain.CharsetUpper,
		"digits":  domain.CharsetDigits,
		"special": domain.CharsetSpecial,
		"all":     domain.CharsetAll,
	}

	var list alphabet.CandidateList
	for _, pos := range strings.Split(positions, ",") {
		pos = strings.TrimSpace(pos)
		if pos == "" {
			return nil, fmt.Errorf("%w: empty position", domain.ErrInvalidAlphabet)
		}
		if charset, ok := named[pos]; ok {
			list = append(list, charset)
			continue
		}
		list = append(list, pos)
	}
	return list, nil
}
