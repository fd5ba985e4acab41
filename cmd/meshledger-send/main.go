package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/blinklabs-io/meshledger/client"
	"github.com/blinklabs-io/meshledger/internal/config"
	"github.com/blinklabs-io/meshledger/internal/logging"
	"github.com/blinklabs-io/meshledger/internal/version"
	"github.com/blinklabs-io/meshledger/nodeview"
	"github.com/blinklabs-io/meshledger/secretmanager"

	_ "go.uber.org/automaxprocs"
)

const programName = "meshledger-send"

var cmdlineFlags struct {
	configFile string
	version    bool
	mnemonic   string
	hrp        string
	coinType   uint
	to         string
	amount     uint64
}

func main() {
	flag.StringVar(&cmdlineFlags.configFile, "config", "", "path to config file to load")
	flag.BoolVar(&cmdlineFlags.version, "version", false, "show version")
	flag.StringVar(&cmdlineFlags.mnemonic, "mnemonic", "", "BIP-39 mnemonic to sign with (falls back to config's wallet.mnemonic)")
	flag.StringVar(&cmdlineFlags.hrp, "hrp", "smr", "bech32 human-readable part")
	flag.UintVar(&cmdlineFlags.coinType, "coin-type", 4218, "SLIP-44 coin type")
	flag.StringVar(&cmdlineFlags.to, "to", "", "bech32-encoded recipient address")
	flag.Uint64Var(&cmdlineFlags.amount, "amount", 0, "amount to send")
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

	if cmdlineFlags.to == "" || cmdlineFlags.amount == 0 {
		fmt.Printf("ERROR: -to and -amount are required\n")
		os.Exit(1)
	}

	mnemonic := cmdlineFlags.mnemonic
	if mnemonic == "" {
		mnemonic = cfg.Wallet.Mnemonic
	}
	if mnemonic == "" {
		fmt.Printf("ERROR: no mnemonic given; pass -mnemonic or set wallet.mnemonic in the config file\n")
		os.Exit(1)
	}
	sm, err := secretmanager.NewMnemonicBackend(mnemonic)
	if err != nil {
		fmt.Printf("ERROR: invalid mnemonic: %s\n", err)
		os.Exit(1)
	}

	httpClient := nodeview.NewHTTPClient(cfg.Node.IndexerUrl, cfg.Node.CoreUrl, logger)
	c := client.New(httpClient, cmdlineFlags.hrp, logger)

	block, err := c.NewTransactionBuilder().
		WithSecretManager(sm).
		WithCoinType(uint32(cmdlineFlags.coinType)).
		WithOutput(cmdlineFlags.to, cmdlineFlags.amount).
		Finish(context.Background())
	if err != nil {
		fmt.Printf("ERROR: failed to build transaction: %s\n", err)
		os.Exit(1)
	}

	txBytes, err := block.Transaction.Serialize()
	if err != nil {
		fmt.Printf("ERROR: failed to serialize transaction: %s\n", err)
		os.Exit(1)
	}
	blockID, err := httpClient.SubmitBlock(context.Background(), txBytes)
	if err != nil {
		fmt.Printf("ERROR: failed to submit block: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("submitted block %s\n", hex.EncodeToString(blockID[:]))
}
