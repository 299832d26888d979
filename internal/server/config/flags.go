package config

import (
	"flag"
	"os"

	"github.com/klimata/riskboard/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   SQLite database path
//	-f string   dataset CSV path or object key
//	-s string   dataset source: "file" or "s3"
//	-l string   log directory (enables rotated file logging)
//	-n int      top-N barangays in the overview chart
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Arguments are first filtered through flagx.FilterArgs so unrelated flags
// (like -c/-config for the JSON overlay) do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-f", "-s", "-l", "-n", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "SQLite database path")
	fs.StringVar(&config.DatasetPath, "f", config.DatasetPath, "dataset CSV path or object key")
	fs.StringVar(&config.DatasetSource, "s", config.DatasetSource, "dataset source (file|s3)")
	fs.StringVar(&config.LogDir, "l", config.LogDir, "log directory")
	fs.IntVar(&config.TopN, "n", config.TopN, "top-N barangays in overview chart")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
