/* feed.go
 * Contains the Feed struct and methods for reading game records from the
 * scoring database and publishing display/announcement documents back to it
 */

package external

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scorix-ops/api/shared"
)

// Interface defines the feed methods the rest of the application depends on.
// This allows for mocking in tests.
type Interface interface {
	FetchGames() ([]GameRecord, error)
	PushGame(game GameRecord) error
	PublishDisplay(snapshot DisplaySnapshot) error
	AnnounceMatch(match shared.Match) error
	Disconnect(ctx context.Context) error
}

// Ensure Feed implements Interface
var _ Interface = (*Feed)(nil)

// Feed is the client for the external scoring database. Scoring tablets write
// game records into the games collection; this client polls them and publishes
// derived display data back.
type Feed struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Games         *mongo.Collection
		Display       *mongo.Collection
		Announcements *mongo.Collection
	}
}

// NewFeed initialises the feed client and its collection handles
// Preconditions: Receives strings containing the database name and mongo URI
// Postconditions: Returns a pointer to the Feed, or an error if the connection
// could not be established
func NewFeed(dbName string, mongoURI string) (*Feed, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	f := &Feed{
		Client:   client,
		Database: db,
	}
	f.Collections.Games = db.Collection("gamescores")
	f.Collections.Display = db.Collection("competition_display")
	f.Collections.Announcements = db.Collection("live_announcement")
	return f, nil
}

// FetchGames returns every game record currently in the feed, in feed order.
// The reconciler relies on this order: when more than one record covers the
// same pairing the first one in the feed wins
func (f *Feed) FetchGames() ([]GameRecord, error) {
	cursor, err := f.Collections.Games.Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching games from feed: %w", err)
	}
	defer cursor.Close(context.TODO())

	var games []GameRecord
	if err := cursor.All(context.TODO(), &games); err != nil {
		return nil, fmt.Errorf("error decoding game records: %w", err)
	}
	return games, nil
}

// PushGame upserts a game record by its game number. This is the only write
// path from the schedule back into the feed
func (f *Feed) PushGame(game GameRecord) error {
	filter := bson.M{"GameNumber": game.GameNumber}
	update := bson.M{"$set": game}
	opts := options.Update().SetUpsert(true)

	_, err := f.Collections.Games.UpdateOne(context.TODO(), filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert game %d: %w", game.GameNumber, err)
	}
	return nil
}

// PublishDisplay replaces the display collection's single document with the
// current schedule and finals state
func (f *Feed) PublishDisplay(snapshot DisplaySnapshot) error {
	opts := options.Replace().SetUpsert(true)
	_, err := f.Collections.Display.ReplaceOne(context.TODO(), bson.D{}, snapshot, opts)
	if err != nil {
		return fmt.Errorf("failed to publish display snapshot: %w", err)
	}
	return nil
}

// AnnounceMatch publishes the given match as the live announcement. The
// collection only ever holds the most recent announcement
func (f *Feed) AnnounceMatch(match shared.Match) error {
	if _, err := f.Collections.Announcements.DeleteMany(context.TODO(), bson.D{}); err != nil {
		return fmt.Errorf("failed to clear live announcement: %w", err)
	}
	if _, err := f.Collections.Announcements.InsertOne(context.TODO(), match); err != nil {
		return fmt.Errorf("failed to insert live announcement: %w", err)
	}
	return nil
}

// Disconnect closes the underlying mongo client
func (f *Feed) Disconnect(ctx context.Context) error {
	return f.Client.Disconnect(ctx)
}
