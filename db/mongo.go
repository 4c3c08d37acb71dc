package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Mongo  *mongo.Database
	client *mongo.Client
)

func Connect() error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		fmt.Println("MONGO_URI environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "naijatruths"
	}
	Mongo = client.Database(name)

	return nil
}

func Close() {
	if client != nil {
		client.Disconnect(context.Background())
	}
}
