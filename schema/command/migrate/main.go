package main

import (
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"

	"github.com/fusex/medevac-api/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("medevac")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	db, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		panic(err)
	}
	// search_path is per connection
	db.DB().SetMaxOpenConns(1)

	if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS medevac`).Error; err != nil {
		panic(err)
	}

	if err := db.Exec("SET search_path TO medevac").Error; err != nil {
		panic(err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(
		&schema.Region{},
		&schema.Organization{},
		&schema.User{},
		&schema.Request{},
		&schema.Response{},
		&schema.ActionLog{},
	).Error; err != nil {
		panic(err)
	}

	if err := db.Model(schema.Response{}).Where(fmt.Sprintf("selected = %t", true)).
		AddUniqueIndex("response_unique_selected_per_request", "request_id").Error; err != nil {
		panic(err)
	}

	foreignKeys := []struct {
		model interface{}
		field string
		dest  string
	}{
		{schema.Organization{}, "region_id", "regions(id)"},
		{schema.User{}, "organization_id", "organizations(id)"},
		{schema.User{}, "region_id", "regions(id)"},
		{schema.Request{}, "sender_id", "organizations(id)"},
		{schema.Response{}, "request_id", "requests(id)"},
		{schema.Response{}, "receiver_id", "organizations(id)"},
		{schema.ActionLog{}, "request_id", "requests(id)"},
		{schema.ActionLog{}, "response_id", "responses(id)"},
	}
	for _, fk := range foreignKeys {
		if err := db.Model(fk.model).AddForeignKey(fk.field, fk.dest, "RESTRICT", "RESTRICT").Error; err != nil {
			panic(err)
		}
	}

	// an entry documents exactly one of a request or a response
	if err := db.Exec(`ALTER TABLE action_logs DROP CONSTRAINT IF EXISTS action_log_single_target`).Error; err != nil {
		panic(err)
	}
	if err := db.Exec(`ALTER TABLE action_logs ADD CONSTRAINT action_log_single_target
		CHECK ((request_id IS NULL) <> (response_id IS NULL))`).Error; err != nil {
		panic(err)
	}
}
