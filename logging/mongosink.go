package logging

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSink is a batching Producer that ships Entry records to a MongoDB
// collection. It is the Go translation of original_source's MongoLogger:
// a queue drained in a dedicated goroutine, batching until the queue is
// empty (flush) or closed (flush, then shut the client down).
type MongoSink struct {
	client             *mongo.Client
	databaseName       string
	databaseOptions    *options.DatabaseOptions
	collectionName     string
	collectionOptions  *options.CreateCollectionOptions
	queue              chan Entry
	log                *logrus.Entry
}

// NewMongoSink constructs a MongoSink. queueCapacity bounds how many
// pending Entry records may be buffered before Emit blocks its caller.
func NewMongoSink(
	client *mongo.Client,
	databaseName string,
	dbOptions *options.DatabaseOptions,
	collectionName string,
	collectionOptions *options.CreateCollectionOptions,
	queueCapacity int,
) *MongoSink {
	return &MongoSink{
		client:            client,
		databaseName:      databaseName,
		databaseOptions:   dbOptions,
		collectionName:    collectionName,
		collectionOptions: collectionOptions,
		queue:             make(chan Entry, queueCapacity),
		log:               logrus.WithField("component", "logging.MongoSink"),
	}
}

// Emit implements Producer. It never blocks the caller past the queue's
// capacity; a full queue applies backpressure to the emitting endpoint,
// matching the original's bounded crossbeam channel between the core and
// the logger thread.
func (s *MongoSink) Emit(e Entry) {
	e.Stamp = time.Now()
	s.queue <- e
}

// Close signals Run to flush and shut down once the queue drains. It is
// the Go equivalent of dropping the original's crossbeam Sender half.
func (s *MongoSink) Close() {
	close(s.queue)
}

// Run drives the batching loop: repeatedly drain whatever is queued,
// insert it as one batch, and repeat until the queue is closed and
// empty, then shut the Mongo client down. Intended to run in its own
// goroutine, one per sink, matching spec.md section 6's "Sinks ... drain
// a stream in a dedicated thread, batching until the channel is empty or
// disconnected, flushing by insert-many, and shutting down the client on
// disconnect."
func (s *MongoSink) Run(ctx context.Context) error {
	database := s.client.Database(s.databaseName, s.databaseOptions)
	if err := database.CreateCollection(ctx, s.collectionName, s.collectionOptions); err != nil {
		s.log.WithError(err).Warn("collection already configured or creation failed, continuing")
	}
	collection := database.Collection(s.collectionName)

	batch := make([]interface{}, 0, 256)
	shouldContinue := true
	for shouldContinue {
		select {
		case e, ok := <-s.queue:
			if !ok {
				shouldContinue = false
			} else {
				batch = append(batch, e)
			drain:
				for {
					select {
					case e2, ok2 := <-s.queue:
						if !ok2 {
							shouldContinue = false
							break drain
						}
						batch = append(batch, e2)
					default:
						break drain
					}
				}
			}
		case <-ctx.Done():
			shouldContinue = false
		}

		if len(batch) > 0 {
			if _, err := collection.InsertMany(ctx, batch); err != nil {
				s.log.WithError(err).Error("failed to flush log batch")
			}
			batch = batch[:0]
		}
	}

	if err := s.client.Disconnect(ctx); err != nil {
		s.log.WithError(err).Warn("error shutting down mongo client")
		return err
	}
	return nil
}
