package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"mapsnap/internal/env"
	"mapsnap/internal/history"
	"mapsnap/internal/keys"
	"mapsnap/internal/models"
	"mapsnap/internal/pipeline"
	"mapsnap/internal/service"
	"mapsnap/internal/storage"
	"mapsnap/pkg/fetch"
	"mapsnap/pkg/graceful"
	"mapsnap/pkg/kafkaclient"
	"mapsnap/pkg/staticmap"
)

// job carries one snapshot request through the pipeline stages.
type job struct {
	Snap        models.Snapshot
	URL         string
	Image       []byte
	ContentType string
}

func main() {
	env.Load()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	broker := env.MustGet("KAFKA_BROKER")
	topic := env.MustGet("KAFKA_TOPIC")
	groupID := env.MustGet("KAFKA_GROUP_ID")
	bucket := env.MustGet("SNAPSHOT_BUCKET")

	log.Printf("Connecting to Kafka broker %s, topic %s, group %s", broker, topic, groupID)
	consumer := kafkaclient.NewConsumer(broker, topic, groupID)

	s3Service, err := storage.NewS3Service()
	if err != nil {
		log.Fatal(err)
	}
	if err := s3Service.CreateBucket(ctx, bucket, ""); err != nil {
		log.Fatal(err)
	}

	var store *history.Store
	if dsn := env.Get("POSTGRES_DSN", ""); dsn != "" {
		store, err = history.New(ctx, dsn)
		if err != nil {
			log.Fatalf("Failed to open snapshot history: %v", err)
		}
		defer store.Close()
	}

	provider := staticmap.NewProvider(env.MustGet("MAPS_API_KEY"))
	fetcher := fetch.New(2, 2, 30*time.Second)

	buildURL := func(_ context.Context, j *job) error {
		j.URL = provider.URL(j.Snap.Options())
		j.Snap.URL = j.URL
		return nil
	}
	fetchImage := func(ctx context.Context, j *job) error {
		body, contentType, err := fetcher.Get(ctx, j.URL)
		if err != nil {
			return fmt.Errorf("fetch snapshot %s: %w", j.Snap.ID, err)
		}
		j.Image = body
		j.ContentType = contentType
		return nil
	}
	storeImage := func(ctx context.Context, j *job) error {
		if j.Image == nil {
			return nil // fetch failed, nothing to archive
		}
		return s3Service.StoreImage(ctx, bucket, keys.Snapshot(j.Snap), j.Image, j.ContentType)
	}
	recordHistory := func(ctx context.Context, j *job) error {
		if store == nil || j.Image == nil {
			return nil
		}
		return store.Record(ctx, history.Entry{
			ID:        j.Snap.ID,
			URL:       j.URL,
			ObjectKey: keys.Snapshot(j.Snap),
			CreatedAt: j.Snap.CreatedAt,
		})
	}

	p := pipeline.New(
		pipeline.NewStage(buildURL),
		pipeline.NewStage(fetchImage),
		pipeline.NewStage(storeImage, recordHistory),
	)

	consumer.Start(ctx)
	iterator := service.NewIterator[models.Snapshot](consumer)

	jobs := make(chan *job)
	go func() {
		defer close(jobs)
		for snap := range iterator.Items(ctx) {
			log.Printf("Processing snapshot request %s", snap.ID)
			jobs <- &job{Snap: snap}
		}
	}()

	p.Process(ctx, jobs)

	consumer.Stop()
	log.Println("Worker finished, exiting.")
}
