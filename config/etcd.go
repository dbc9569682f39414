package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"gopkg.in/yaml.v3"
)

// EtcdOptions etcd 配置选项
type EtcdOptions struct {
	Endpoints   []string      // etcd 服务器地址列表
	Username    string        // 用户名（可选）
	Password    string        // 密码（可选）
	Prefix      string        // 键前缀（可选）
	Timeout     time.Duration // 读取超时时间（默认 5 秒）
	DialTimeout time.Duration // 拨号超时时间（默认 5 秒）
}

func (o *EtcdOptions) applyDefaults() {
	if o.Timeout == 0 {
		o.Timeout = 5 * time.Second
	}
	if o.DialTimeout == 0 {
		o.DialTimeout = 5 * time.Second
	}
}

// Validate 验证配置
func (o *EtcdOptions) Validate() error {
	if len(o.Endpoints) == 0 {
		return fmt.Errorf("etcd endpoints are required")
	}
	return nil
}

// EtcdSource etcd 配置源
type EtcdSource struct {
	Options EtcdOptions
}

// Name 实现 ConfigurationSource
func (s *EtcdSource) Name() string {
	return fmt.Sprintf("Etcd(%v)", s.Options.Endpoints)
}

// Load 实现 ConfigurationSource
// 读取前缀下的全部键值；值按 JSON、YAML、纯字符串的顺序尝试解析。
func (s *EtcdSource) Load() (map[string]any, error) {
	s.Options.applyDefaults()

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   s.Options.Endpoints,
		Username:    s.Options.Username,
		Password:    s.Options.Password,
		DialTimeout: s.Options.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.Options.Timeout)
	defer cancel()

	prefix := s.Options.Prefix
	if prefix == "" {
		prefix = "/"
	}

	resp, err := cli.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to get config from etcd: %w", err)
	}

	result := make(map[string]any)
	for _, kv := range resp.Kvs {
		key := string(kv.Key)
		if s.Options.Prefix != "" {
			key = strings.TrimPrefix(key, s.Options.Prefix)
		}
		key = strings.TrimPrefix(key, "/")
		if key == "" {
			continue
		}
		key = strings.ReplaceAll(key, "/", ":")
		setNestedValue(result, key, parseEtcdValue(string(kv.Value)))
	}

	return result, nil
}

// parseEtcdValue 按 JSON、YAML、纯字符串的顺序解析键值
func parseEtcdValue(value string) any {
	var jsonValue any
	if err := json.Unmarshal([]byte(value), &jsonValue); err == nil {
		return jsonValue
	}
	var yamlValue any
	if err := yaml.Unmarshal([]byte(value), &yamlValue); err == nil {
		return yamlValue
	}
	return value
}

// EtcdWatcher 监听 etcd 键变化，用于运行期动态调整日志配置
type EtcdWatcher struct {
	cli    *clientv3.Client
	prefix string
	cancel context.CancelFunc
}

// NewEtcdWatcher 创建 etcd 监听器
func NewEtcdWatcher(opts EtcdOptions) (*EtcdWatcher, error) {
	opts.applyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   opts.Endpoints,
		Username:    opts.Username,
		Password:    opts.Password,
		DialTimeout: opts.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "/"
	}

	return &EtcdWatcher{cli: cli, prefix: prefix}, nil
}

// Watch 在后台监听前缀下的键变化，每次变化回调 onChange。
// 回调参数是去掉前缀后的键和最新值。
func (w *EtcdWatcher) Watch(onChange func(key, value string)) {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	ch := w.cli.Watch(ctx, w.prefix, clientv3.WithPrefix())
	go func() {
		for resp := range ch {
			for _, ev := range resp.Events {
				if ev.Type != clientv3.EventTypePut {
					continue
				}
				key := strings.TrimPrefix(string(ev.Kv.Key), w.prefix)
				key = strings.TrimPrefix(key, "/")
				onChange(key, string(ev.Kv.Value))
			}
		}
	}()
}

// Close 停止监听并关闭客户端
func (w *EtcdWatcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	return w.cli.Close()
}
