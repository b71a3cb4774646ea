package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/wager-escrow/pkg/config"
	wshandler "github.com/chris/wager-escrow/pkg/handlers/websockets"
	dydbstore "github.com/chris/wager-escrow/pkg/storage/dynamodb"
)

// The API Gateway websocket routes ($connect, $disconnect, $default) all
// point at this function; connection ids are kept in the connections table
// for the publisher.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
		Connections: cfg.DynamoDB.ConnectionsTable,
	})

	h := wshandler.NewHandler(store, nil)
	lambda.Start(h.Route)
}
