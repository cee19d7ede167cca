// Package fallback bundles the default dataset used when every configured source fails.
package fallback

import "embed"

//go:embed countries.json
var Files embed.FS

// DatasetLocator names the bundled dataset.
const DatasetLocator = "embedded://countries.json"
