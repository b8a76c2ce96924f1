package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"digit-softmax/internal/config"
	"digit-softmax/internal/dataset"
	"digit-softmax/internal/model"
	"digit-softmax/internal/report"
	"digit-softmax/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "configs/mnist.yaml", "Path to YAML config")
	dataDir := flag.String("data-dir", "", "Override data directory")
	trainCount := flag.Int("train-count", 0, "Number of training examples to load")
	testCount := flag.Int("test-count", 0, "Number of test examples to load")
	precision := flag.String("precision", "", "Pixel and weight precision (float64 or float32)")
	display := flag.Int("display", -1, "Number of test images to print")
	validateHeaders := flag.Bool("validate-headers", false, "Check IDX header magic, count and dimensions")

	flag.Parse()

	log.SetPrefix("run=" + uuid.NewString()[:8] + " ")

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		DataDir:         *dataDir,
		TrainCount:      *trainCount,
		TestCount:       *testCount,
		Precision:       *precision,
		Display:         *display,
		ValidateHeaders: *validateHeaders,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	train, test, err := resolvePairs(cfg)
	if err != nil {
		log.Fatalf("resolve data files: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Precision {
	case config.PrecisionFloat32:
		err = run[float32](ctx, os.Stdout, cfg, train, test)
	default:
		err = run[float64](ctx, os.Stdout, cfg, train, test)
	}
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

func resolvePairs(cfg *config.Config) (dataset.Pair, dataset.Pair, error) {
	if cfg.ExplicitPaths() {
		return dataset.Pair{Images: cfg.TrainImages, Labels: cfg.TrainLabels},
			dataset.Pair{Images: cfg.TestImages, Labels: cfg.TestLabels}, nil
	}
	train, err := dataset.DiscoverPair(cfg.DataDir, "train")
	if err != nil {
		return dataset.Pair{}, dataset.Pair{}, err
	}
	test, err := dataset.DiscoverPair(cfg.DataDir, "t10k")
	if err != nil {
		return dataset.Pair{}, dataset.Pair{}, err
	}
	return train, test, nil
}

func run[F dataset.Float](ctx context.Context, out io.Writer, cfg *config.Config, trainPair, testPair dataset.Pair) error {
	var opts []dataset.Option
	if cfg.ValidateHeaders {
		opts = append(opts, dataset.WithHeaderValidation())
	}

	train, err := dataset.Load[F](trainPair.Images, trainPair.Labels, cfg.TrainCount, opts...)
	if err != nil {
		return err
	}
	log.Printf("loaded split=train examples=%d precision=%s images=%s", train.Len(), cfg.Precision, trainPair.Images)

	test, err := dataset.Load[F](testPair.Images, testPair.Labels, cfg.TestCount, opts...)
	if err != nil {
		return err
	}
	log.Printf("loaded split=test examples=%d precision=%s images=%s", test.Len(), cfg.Precision, testPair.Images)

	clf := model.NewDigitClassifier[F]()
	if err := trainer.Train(ctx, clf, train, trainer.Options{}); err != nil {
		return err
	}

	printer := &report.Printer{W: out, Limit: cfg.Display}
	var displayErr error
	res, err := trainer.Evaluate(clf, test, func(i int, ex dataset.Example[F], predicted int) {
		if displayErr == nil {
			displayErr = report.Example(printer, i, ex, predicted)
		}
	})
	if err != nil {
		return err
	}
	if displayErr != nil {
		return displayErr
	}
	return printer.Accuracy(res)
}
