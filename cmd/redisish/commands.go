package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/internal/client"
	"github.com/eveisesi/redisish/internal/store"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func serverAddr(c *cli.Context) string {
	if addr := c.String("addr"); addr != "" {
		return addr
	}
	return cfg.Server.Addr
}

func dial(c *cli.Context) (*client.Client, error) {
	ctx, cancel := context.WithTimeout(c.Context, time.Second*5)
	defer cancel()

	return client.Dial(ctx, serverAddr(c))
}

func publishCommand(c *cli.Context) error {

	if c.Args().Len() == 0 {
		return errors.New("expected a payload, got none")
	}

	cl, err := dial(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	err = cl.Publish(c.Context, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, "OK")
	return err

}

func retrieveCommand(c *cli.Context) error {

	if c.Args().Len() > 0 {
		return errors.Errorf("expected 0 args, got %d", c.Args().Len())
	}

	cl, err := dial(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	payload, err := cl.Retrieve(c.Context)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, payload)
	return err

}

func historyCommand(c *cli.Context) error {

	ctx, cancel := context.WithTimeout(c.Context, time.Second*10)
	defer cancel()

	stores, err := buildStore(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to initialize %s store", cfg.Store)
	}
	defer stores.close()

	if stores.history == nil {
		return errors.Errorf("store %q does not keep history", cfg.Store)
	}

	messages, err := stores.history.Messages(ctx, historyOperators(c.Int64("limit"), c.String("client"), c.String("contains"))...)
	if err != nil {
		return errors.Wrap(err, "failed to list messages")
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PUBLISHED\tCLIENT\tPAYLOAD")
	for _, message := range messages {
		from := "-"
		if message.Client.Valid {
			from = message.Client.String
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", message.PublishedAt.Format(time.RFC3339), from, message.Payload)
	}

	return w.Flush()

}

func historyOperators(limit int64, client, contains string) []*redisish.Operator {

	operators := []*redisish.Operator{
		redisish.NewOrderOperator(store.MessagePublishedAt, redisish.SortDesc),
	}
	if limit > 0 {
		operators = append(operators, redisish.NewLimitOperator(limit))
	}
	if client != "" {
		operators = append(operators, redisish.NewEqualOperator(store.MessageClient, client))
	}
	if contains != "" {
		operators = append(operators, redisish.NewLikeOperator(store.MessagePayload, contains))
	}

	return operators

}
