package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dbehnke/lc3ep/internal/config"
	"github.com/dbehnke/lc3ep/internal/database"
	"github.com/dbehnke/lc3ep/internal/fec"
	"github.com/dbehnke/lc3ep/internal/simulate"
)

const VERSION = "1.0.0"

func main() {
	var (
		configFile = flag.String("config", "", "Run a simulation campaign from a YAML file")
		encodeIn   = flag.String("encode", "", "Encode the payload file into a slot")
		decodeIn   = flag.String("decode", "", "Decode the slot file back into a payload")
		outFile    = flag.String("out", "", "Output file for -encode/-decode")
		mode       = flag.Int("mode", 2, "Protection mode 0..4 for -encode")
		epmr       = flag.Int("epmr", 0, "Mode request 0..3 for -encode")
		slot       = flag.Int("slot", 80, "Slot size in bytes")
		version    = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "lc3ep: ", log.LstdFlags)

	switch {
	case *version:
		fmt.Printf("lc3ep %s\n", VERSION)
	case *configFile != "":
		if err := runCampaign(logger, *configFile); err != nil {
			logger.Fatalf("campaign failed: %v", err)
		}
	case *encodeIn != "":
		if err := encodeFile(*encodeIn, *outFile, fec.Mode(*mode), uint8(*epmr), *slot); err != nil {
			logger.Fatalf("encode failed: %v", err)
		}
	case *decodeIn != "":
		if err := decodeFile(logger, *decodeIn, *outFile, *slot); err != nil {
			logger.Fatalf("decode failed: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func runCampaign(logger *log.Logger, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	campaign := simulate.Campaign{
		SlotBytes:    cfg.SlotBytes,
		Mode:         fec.Mode(cfg.Mode),
		EPMR:         uint8(cfg.EPMR),
		Frames:       cfg.Frames,
		Model:        simulate.ErrorModel(cfg.ErrorModel),
		BitErrorRate: cfg.BitErrorRate,
		BurstLen:     cfg.BurstLen,
		Seed:         cfg.Seed,
	}
	logger.Printf("running %q: slot=%d mode=%d model=%s frames=%d",
		cfg.Campaign, cfg.SlotBytes, cfg.Mode, cfg.ErrorModel, cfg.Frames)
	outcomes, err := campaign.Run()
	if err != nil {
		return err
	}
	s := simulate.Summarize(outcomes)
	logger.Printf("frames=%d clean=%d fatal=%d partial=%d intact=%d",
		s.Frames, s.Clean, s.Fatal, s.Partial, s.Intact)

	if cfg.Database == "" {
		return nil
	}
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	repo := database.NewFrameResultRepository(db.Gorm())
	results := make([]database.FrameResult, len(outcomes))
	for i, o := range outcomes {
		results[i] = database.FrameResult{
			Campaign:     cfg.Campaign,
			Frame:        o.Frame,
			SlotBytes:    cfg.SlotBytes,
			TrueMode:     cfg.Mode,
			DetectedMode: int(o.DetectedMode),
			BFI:          int(o.BFI),
			Injected:     o.Injected,
			Corrected:    o.Corrected,
			EPMRMatch:    o.EPMRMatch,
			DataIntact:   o.DataIntact,
		}
	}
	if err := repo.InsertBatch(results); err != nil {
		return err
	}
	logger.Printf("stored %d frame results to %s", len(results), cfg.Database)
	return nil
}

func encodeFile(in, out string, mode fec.Mode, epmr uint8, slot int) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	size, err := fec.DataSize(mode, false, slot)
	if err != nil {
		return err
	}
	if len(data) > size {
		return fmt.Errorf("payload is %d bytes, mode %d slot %d carries %d",
			len(data), mode, slot, size)
	}
	buf := make([]byte, slot)
	copy(buf, data)
	npccw := fec.NumPCCodewords(slot, mode, false)
	if err := fec.Encode(mode, epmr, buf, len(data), slot, npccw); err != nil {
		return err
	}
	return os.WriteFile(out, buf, 0o644)
}

func decodeFile(logger *log.Logger, in, out string, slot int) error {
	buf, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if len(buf) != slot {
		return fmt.Errorf("slot file is %d bytes, expected %d", len(buf), slot)
	}
	res, err := fec.Decode(buf, slot, false)
	if err != nil {
		return err
	}
	logger.Printf("bfi=%d mode=%d epmr=%d conf=%d corrected=%d",
		res.BFI, res.Mode, res.EPMR.Value(), res.EPMR.Confidence(), res.ErrorReport)
	if res.BFI == fec.BFIFatal {
		return fmt.Errorf("frame is bad, no payload written")
	}
	return os.WriteFile(out, buf[:res.DataBytes], 0o644)
}
