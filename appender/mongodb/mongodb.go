// Package mongodb 提供基于 MongoDB 集合的日志输出器。
// 每条日志 InsertOne 一份 BSON 文档，字段原样入库便于查询。
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gocrud/logkit/event"
)

// Options MongoDB 输出器选项
type Options struct {
	Uri        string
	Database   string
	Collection string
	Username   string
	Password   string
	Timeout    time.Duration
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions(uri, database, collection string) *Options {
	return &Options{
		Uri:        uri,
		Database:   database,
		Collection: collection,
		Timeout:    5 * time.Second,
	}
}

// Validate 验证配置
func (o *Options) Validate() error {
	if o.Uri == "" {
		return fmt.Errorf("mongo uri is required")
	}
	if o.Database == "" {
		return fmt.Errorf("mongo database is required")
	}
	if o.Collection == "" {
		return fmt.Errorf("mongo collection is required")
	}
	return nil
}

// Appender MongoDB 集合输出器
type Appender struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
	ownsCli    bool
}

// NewAppender 按选项创建输出器（自建客户端）
func NewAppender(opts Options) (*Appender, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	clientOpts := options.Client().ApplyURI(opts.Uri)
	if opts.Username != "" || opts.Password != "" {
		clientOpts.SetAuth(options.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
	}
	clientOpts.SetConnectTimeout(opts.Timeout)

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	a := NewAppenderWithClient(client, opts.Database, opts.Collection, opts.Timeout)
	a.ownsCli = true
	return a, nil
}

// NewAppenderWithClient 复用已有客户端创建输出器（客户端生命周期归调用方）
func NewAppenderWithClient(client *mongo.Client, database, collection string, timeout time.Duration) *Appender {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Appender{
		client:     client,
		collection: client.Database(database).Collection(collection),
		timeout:    timeout,
	}
}

// Name 实现 appender.Appender
func (a *Appender) Name() string { return "mongodb" }

// Append 实现 appender.Appender
func (a *Appender) Append(e *event.LogEvent, line string) error {
	doc := bson.M{
		"time":     e.Time,
		"level":    e.Level.String(),
		"category": e.Category,
		"message":  e.Message,
		"rendered": line,
	}
	if len(e.Fields) > 0 {
		fields := bson.M{}
		for _, f := range e.Fields {
			fields[f.Key] = f.Value
		}
		doc["fields"] = fields
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if _, err := a.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo append failed: %w", err)
	}
	return nil
}

// Close 实现 appender.Appender
func (a *Appender) Close() error {
	if !a.ownsCli {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	return a.client.Disconnect(ctx)
}
