package version

var (
	Version = "0.1.0"

	// git hash should be filled by:
	// 	go build -ldflags="-X github.com/ontojson/ontojson/version.GitHash=xxxx"

	GitHash   = "dev snapshot"
	BuildDate string
)
