package main

import (
	"flag"

	_ "redfin-etl/configs"
	"redfin-etl/internal/warehouse"
	"redfin-etl/pkg/log"
	"redfin-etl/pkg/msg"
)

// warehouse-setup renders the Snowflake bootstrap script from the
// application configuration. The script is applied manually through the
// Snowflake console or snowsql, it is not executed by this binary.
func main() {
	out := flag.String("out", "warehouse_setup.sql", "path of the generated bootstrap script")
	flag.Parse()

	log.Info(msg.GetMessage("warehouse.render.start"))

	if err := warehouse.RenderFile(*out, warehouse.ConfigFromResources()); err != nil {
		log.Fatal(msg.GetMessage("warehouse.render.error.render-failed", err))
	}

	log.Info(msg.GetMessage("warehouse.render.end", *out))
}
