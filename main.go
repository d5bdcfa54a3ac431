// Command goodnews reports good news found in the COVID-19 time series.
package main

import (
	"os"

	"github.com/covid19gng/goodnews/cmd"
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	cmd.SetStoreManager(iocache.Manager)
	if err := cmd.Execute(); err != nil {
		contract.Logger("goodnews").Error(err)
		iocache.CloseStores()
		os.Exit(1)
	}
}
