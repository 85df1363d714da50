package version

import (
	"fmt"
	"strconv"
	"time"
)

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X relatrix.app/crmserver/internal/version.Version=1.2.3"
var Version = "1.0"

// RepoURL is the project repository URL. Can be overridden at build time via:
//
//	go build -ldflags "-X relatrix.app/crmserver/internal/version.RepoURL=https://github.com/yourfork/crmserver"
var RepoURL = "https://github.com/relatrix/crmserver"

// Banner prints identifying information about the server.
func Banner() string {
	y := strconv.Itoa(time.Now().Year())
	copyright := "Copyright 2025-" + y + " Relatrix. All rights reserved."

	return fmt.Sprintf("%s\nRelatrix CRM Server (v%s)\n%s\n", product(), Version, copyright)
}

func product() string {
	// http://patorjk.com/software/taag/#p=display&f=Standard&t=Relatrix
	// it includes back ticks, which makes this more difficult (replace with `+"`"+`).

	const s = `
  ____      _       _        _
 |  _ \ ___| | __ _| |_ _ __(_)_  __
 | |_) / _ \ |/ _` + "`" + ` | __| '__| \ \/ /
 |  _ <  __/ | (_| | |_| |  | |>  <
 |_| \_\___|_|\__,_|\__|_|  |_/_/\_\
`
	return s
}
