package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/blinklabs-io/meshledger/address"
	"github.com/blinklabs-io/meshledger/internal/config"
	"github.com/blinklabs-io/meshledger/internal/logging"
	"github.com/blinklabs-io/meshledger/internal/version"

	_ "go.uber.org/automaxprocs"
)

const programName = "meshledger-addrgen"

var cmdlineFlags struct {
	configFile string
	version    bool
	mnemonic   string
	hrp        string
	coinType   uint
	account    uint
	change     bool
	start      uint
	count      uint
}

func main() {
	flag.StringVar(&cmdlineFlags.configFile, "config", "", "path to config file to load")
	flag.BoolVar(&cmdlineFlags.version, "version", false, "show version")
	flag.StringVar(&cmdlineFlags.mnemonic, "mnemonic", "", "BIP-39 mnemonic to derive addresses from (falls back to config's wallet.mnemonic)")
	flag.StringVar(&cmdlineFlags.hrp, "hrp", "smr", "bech32 human-readable part to encode addresses with")
	flag.UintVar(&cmdlineFlags.coinType, "coin-type", 4218, "SLIP-44 coin type")
	flag.UintVar(&cmdlineFlags.account, "account", 0, "account index")
	flag.BoolVar(&cmdlineFlags.change, "change", false, "derive from the internal (change) chain instead of the public chain")
	flag.UintVar(&cmdlineFlags.start, "start", 0, "first address index to derive")
	flag.UintVar(&cmdlineFlags.count, "count", 1, "number of addresses to derive")
	flag.Parse()

	if cmdlineFlags.version {
		fmt.Printf("%s %s\n", programName, version.GetVersionString())
		os.Exit(0)
	}

	cfg, err := config.Load(cmdlineFlags.configFile)
	if err != nil {
		fmt.Printf("Failed to load config: %s\n", err)
		os.Exit(1)
	}

	logging.Configure()
	logger := logging.GetLogger()
	defer func() {
		if err := logger.Sync(); err != nil {
			return
		}
	}()

	if cfg.Debug.ListenPort > 0 {
		logger.Infof("starting debug listener on %s:%d", cfg.Debug.ListenAddress, cfg.Debug.ListenPort)
		go func() {
			err := http.ListenAndServe(fmt.Sprintf("%s:%d", cfg.Debug.ListenAddress, cfg.Debug.ListenPort), nil)
			if err != nil {
				logger.Fatalf("failed to start debug listener: %s", err)
			}
		}()
	}

	mnemonic := cmdlineFlags.mnemonic
	if mnemonic == "" {
		mnemonic = cfg.Wallet.Mnemonic
	}
	if mnemonic == "" {
		fmt.Printf("ERROR: no mnemonic given; pass -mnemonic or set wallet.mnemonic in the config file\n")
		os.Exit(1)
	}

	seed, err := address.SeedFromMnemonic(mnemonic)
	if err != nil {
		fmt.Printf("ERROR: invalid mnemonic: %s\n", err)
		os.Exit(1)
	}
	gen := address.Generator{Seed: seed, CoinType: uint32(cmdlineFlags.coinType), Account: uint32(cmdlineFlags.account)}
	for _, g := range gen.Range(cmdlineFlags.change, uint32(cmdlineFlags.start), uint32(cmdlineFlags.count)) {
		bech32, err := g.Address.Bech32(cmdlineFlags.hrp)
		if err != nil {
			fmt.Printf("ERROR: failed to encode address: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d/%d'/%d'/%d'/%d'\t%s\n", 44, gen.CoinType, gen.Account, boolToChange(cmdlineFlags.change), g.Path.Index, bech32)
	}
}

func boolToChange(change bool) int {
	if change {
		return 1
	}
	return 0
}
