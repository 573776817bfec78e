package main

import (
	"os"

	"github.com/sunshineplan/nftables-geoip/pkg/nftgeoip"
	"github.com/sunshineplan/nftables-geoip/pkg/oslink"
)

func main() {
	os.Exit(nftgeoip.Main(oslink.Get()))
}
