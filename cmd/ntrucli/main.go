package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"falcon-aggregate/aggregate"
	"falcon-aggregate/measure"
	"falcon-aggregate/ntru"
	ntrurio "falcon-aggregate/ntru/io"
	"falcon-aggregate/ntru/keys"
	"falcon-aggregate/ntru/signverify"
	"falcon-aggregate/prof"
)

func usage() {
	fmt.Println(`usage: ntrucli <gen|sign|aggregate|verify|verify-agg> [options]

Subcommands:
  gen         Derive a key pair from a seed and write <dir>/{public,private}.json
              Flags:
                -dir     <path>   key directory (default: ntru_keys)
                -seed    <b64>    32-byte base64 seed (default: random)
                -preset  <name>   falcon-512|falcon-1024 (default: falcon-512)
                -params  <file>   parameter file (overrides -preset)
                -kgtrials <int>   max keygen candidates (default: 1000)
                -kgverbose        log rejection counters

  sign        Sign a message and write <dir>/<out>.json (decoded s2 included)
              Flags:
                -m    <string>    message to sign (required)
                -salt <b64>       pin the 40-byte base64 salt (needed for aggregation)
                -out  <name>      signature name (default: signature)
                -max  <int>       max sampling trials (default: 128)

  aggregate   Sum signatures sharing one salt into <dir>/<out>.json
              Flags:
                -sigs <a,b,...>   signature names (required)
                -out  <name>      aggregate name (default: aggregate)

  verify      Verify a single signature
              Flags: -m <string>, -sig <name> (default: signature)

  verify-agg  Verify an aggregate of -count signatures on -m
              Flags: -m <string>, -sig <name> (default: aggregate), -count <int>`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "aggregate":
		runAggregate(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "verify-agg":
		runVerifyAgg(os.Args[2:])
	default:
		usage()
	}
	if measure.Enabled {
		measure.Global.Dump()
		for _, st := range prof.Summarize(prof.SnapshotAndReset()) {
			fmt.Printf("[prof] %s n=%d mean=%v max=%v\n", st.Label, st.Count, st.Mean(), st.Max)
		}
	}
}

func loadParams(path, preset string) ntru.Params {
	if path == "" {
		par, err := ntru.PresetByName(preset)
		if err != nil {
			log.Fatalf("params: %v", err)
		}
		return par
	}
	par, err := ntrurio.LoadParams(path)
	if err != nil {
		log.Fatalf("load params: %v", err)
	}
	return par
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	dir := fs.String("dir", "ntru_keys", "key directory")
	seedB64 := fs.String("seed", "", "32-byte base64 seed (random if empty)")
	paramsPath := fs.String("params", "", "parameter file (overrides -preset)")
	preset := fs.String("preset", "falcon-512", "parameter preset: falcon-512|falcon-1024")
	kgTrials := fs.Int("kgtrials", 1000, "maximum keygen candidates")
	kgVerbose := fs.Bool("kgverbose", false, "verbose keygen logging")
	fs.Parse(args)

	par := loadParams(*paramsPath, *preset)
	seed := make([]byte, keys.SeedBytes)
	if *seedB64 != "" {
		b, err := keys.DecodeSeed(*seedB64)
		if err != nil {
			log.Fatalf("gen: %v", err)
		}
		seed = b
	} else if _, err := ntru.RandomBytes(seed); err != nil {
		log.Fatalf("seed: %v", err)
	}
	pk, sk, err := signverify.KeygenWithParams(seed, par, ntru.KeygenOpts{MaxTrials: *kgTrials, Verbose: *kgVerbose})
	if err != nil {
		log.Fatalf("gen: %v", err)
	}
	if err := keys.SavePublic(*dir, pk); err != nil {
		log.Fatalf("save public: %v", err)
	}
	if err := keys.SavePrivate(*dir, sk); err != nil {
		log.Fatalf("save private: %v", err)
	}
	fmt.Printf("keys written to %s (seed %s)\n", *dir, keys.EncodeSeed(seed))
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	dir := fs.String("dir", "ntru_keys", "key directory")
	msg := fs.String("m", "", "message string")
	saltB64 := fs.String("salt", "", "40-byte base64 salt")
	out := fs.String("out", "signature", "signature name")
	max := fs.Int("max", ntru.DefaultMaxSignTrials, "max sampling trials")
	fs.Parse(args)
	if *msg == "" {
		log.Fatalf("sign: -m is required")
	}
	sk, err := keys.LoadPrivate(*dir)
	if err != nil {
		log.Fatalf("load private: %v", err)
	}
	signer, err := signverify.NewSigner(sk)
	if err != nil {
		log.Fatalf("signer: %v", err)
	}
	opts := ntru.SignOpts{MaxSignTrials: *max}
	var sig *keys.Signature
	if *saltB64 != "" {
		salt, derr := keys.DecodeSalt(*saltB64)
		if derr != nil {
			log.Fatalf("sign: %v", derr)
		}
		sig, err = signer.SignWithSalt([]byte(*msg), salt, opts)
	} else {
		sig, err = signer.Sign([]byte(*msg), opts)
	}
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	if err := signverify.Decode(sig, signer.Params()); err != nil {
		log.Fatalf("decode: %v", err)
	}
	if err := keys.Save(*dir, *out, sig); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("signature written to %s/%s.json (salt %s)\n", *dir, *out, keys.EncodeSalt(sig.Salt))
}

func runAggregate(args []string) {
	fs := flag.NewFlagSet("aggregate", flag.ExitOnError)
	dir := fs.String("dir", "ntru_keys", "key directory")
	names := fs.String("sigs", "", "comma-separated signature names")
	out := fs.String("out", "aggregate", "aggregate name")
	fs.Parse(args)
	if *names == "" {
		log.Fatalf("aggregate: -sigs is required")
	}
	var sigs []*keys.Signature
	for _, name := range strings.Split(*names, ",") {
		sig, err := keys.Load(*dir, strings.TrimSpace(name))
		if err != nil {
			log.Fatalf("load %s: %v", name, err)
		}
		sigs = append(sigs, sig)
	}
	agg, err := aggregate.Aggregate(sigs)
	if err != nil {
		log.Fatalf("aggregate: %v", err)
	}
	if err := keys.Save(*dir, *out, agg); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("aggregate of %d signatures written to %s/%s.json\n", len(sigs), *dir, *out)
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	dir := fs.String("dir", "ntru_keys", "key directory")
	msg := fs.String("m", "", "message string")
	name := fs.String("sig", "signature", "signature name")
	fs.Parse(args)
	pk, err := keys.LoadPublic(*dir)
	if err != nil {
		log.Fatalf("load public: %v", err)
	}
	sig, err := keys.Load(*dir, *name)
	if err != nil {
		log.Fatalf("load signature: %v", err)
	}
	if !signverify.Verify([]byte(*msg), sig, pk) {
		fmt.Println("verify: INVALID")
		os.Exit(2)
	}
	fmt.Println("verify: OK")
}

func runVerifyAgg(args []string) {
	fs := flag.NewFlagSet("verify-agg", flag.ExitOnError)
	dir := fs.String("dir", "ntru_keys", "key directory")
	msg := fs.String("m", "", "message string")
	name := fs.String("sig", "aggregate", "aggregate name")
	count := fs.Int("count", 0, "number of aggregated signatures")
	fs.Parse(args)
	pk, err := keys.LoadPublic(*dir)
	if err != nil {
		log.Fatalf("load public: %v", err)
	}
	agg, err := keys.Load(*dir, *name)
	if err != nil {
		log.Fatalf("load aggregate: %v", err)
	}
	rep, err := aggregate.Inspect([]byte(*msg), agg, pk, *count)
	if err != nil {
		log.Fatalf("verify-agg: %v", err)
	}
	fmt.Printf("verify-agg: norm=%d limit=%d\n", rep.Total, rep.Limit)
	if !rep.Accepted {
		fmt.Println("verify-agg: INVALID")
		os.Exit(2)
	}
	fmt.Println("verify-agg: OK")
}
