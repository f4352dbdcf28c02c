// Package conf reads the server configuration from a TOML file with
// environment variable overrides on top.
package conf

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Conf struct {
	HttpAddress string `toml:"http_address"`
	AwsRegion   string `toml:"aws_region"`

	ContestTable string `toml:"contest_table"`
	StatusTable  string `toml:"status_table"`
	UserTable    string `toml:"user_table"`
	TaskTable    string `toml:"task_table"`

	JudgedQueueUrl string `toml:"judged_queue_url"`
	ExportBucket   string `toml:"export_bucket"`
}

func Default() *Conf {
	return &Conf{
		HttpAddress:  ":8080",
		AwsRegion:    "eu-central-1",
		ContestTable: "contests",
		StatusTable:  "contest_statuses",
		UserTable:    "users",
		TaskTable:    "tasks",
	}
}

// Read loads the TOML file at path, falling back to defaults when the
// file does not exist, then applies environment overrides.
func Read(path string) (*Conf, error) {
	conf := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	conf.applyEnv()
	return conf, nil
}

func (c *Conf) applyEnv() {
	override(&c.HttpAddress, "HTTP_ADDRESS")
	override(&c.AwsRegion, "AWS_REGION")
	override(&c.ContestTable, "CONTEST_TABLE")
	override(&c.StatusTable, "STATUS_TABLE")
	override(&c.UserTable, "USER_TABLE")
	override(&c.TaskTable, "TASK_TABLE")
	override(&c.JudgedQueueUrl, "JUDGED_QUEUE_URL")
	override(&c.ExportBucket, "EXPORT_BUCKET")
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
