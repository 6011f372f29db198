package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/himanishpuri/audioforensics/pkg/audioforensics"
	"github.com/himanishpuri/audioforensics/pkg/logger"
)

func main() {
	log := logger.GetLogger()
	printBanner()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	log.Infof("Executing command: %s", command)

	svc := audioforensics.New()

	switch command {
	case "load":
		handleLoad(svc)
	case "spectrogram":
		handleSpectrogram(svc)
	case "forensics":
		handleForensics(svc)
	case "samples":
		handleSamples(svc)
	case "export":
		handleExport(svc)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printBanner() {
	banner := `
   _             _ _       ______                    _
  / \  _   _  __| (_) ___ |  ____|__  _ __ ___ _ __ (_) ___ ___
 / _ \| | | |/ _' | |/ _ \| |__ / _ \| '__/ _ \ '_ \| |/ __/ __|
/ ___ \ |_| | (_| | | (_) |  __| (_) | | |  __/ | | | | (__\__ \
\_/   \_\__,_|\__,_|_|\___/|_|   \___/|_|  \___|_| |_|_|\___|___/

           Audio Forensics Workstation CLI
`
	fmt.Println(banner)
}

// loadCurrent decodes the given path once so the store has a current
// track for the commands that share this process invocation. The CLI is
// single-shot: each run loads its own track before acting on it.
func loadCurrent(svc audioforensics.Service, path string) audioforensics.TrackInfo {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	info, err := svc.LoadAudio(ctx, path)
	if err != nil {
		fmt.Printf("❌ Failed to load audio: %v\n", err)
		os.Exit(1)
	}
	return info
}

func handleLoad(svc audioforensics.Service) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: audioforensics load <audio_file>")
		os.Exit(1)
	}
	path := os.Args[2]

	fmt.Println("\n🔧 Decoding audio file...")
	info := loadCurrent(svc, path)

	fmt.Println("\n✅ Loaded track:")
	fmt.Printf("   Duration:    %.3fs\n", info.Duration)
	fmt.Printf("   Sample rate: %d Hz\n", info.SampleRate)
	fmt.Printf("   Channels:    %d\n", info.Channels)
}

func handleSpectrogram(svc audioforensics.Service) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: audioforensics spectrogram <audio_file> [--max-freq <hz>]")
		os.Exit(1)
	}
	path := os.Args[2]

	cmd := flag.NewFlagSet("spectrogram", flag.ExitOnError)
	maxFreq := cmd.Float64("max-freq", 8000, "maximum frequency in Hz")
	cmd.Parse(os.Args[3:])

	loadCurrent(svc, path)

	fmt.Println("\n🔍 Computing spectrogram...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := svc.ComputeSpectrogram(ctx, *maxFreq)
	if err != nil {
		fmt.Printf("❌ Failed to compute spectrogram: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Spectrogram: %d frames, max_freq=%.1f Hz\n", len(result.Data), result.MaxFreq)
	if len(result.Data) > 0 {
		fmt.Printf("   Bins per frame: %d\n", len(result.Data[0]))
	}
}

func handleForensics(svc audioforensics.Service) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: audioforensics forensics <audio_file>")
		os.Exit(1)
	}
	path := os.Args[2]

	loadCurrent(svc, path)

	fmt.Println("\n🔍 Running forensic analysis...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := svc.AnalyzeForensics(ctx)
	if err != nil {
		fmt.Printf("❌ Forensic analysis failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n✅ Forensics:")
	fmt.Printf("   ENF present:     %v\n", result.ENFPresent)
	if result.ENFPresent {
		fmt.Printf("   Grid frequency:  %d Hz\n", result.GridFreq)
		fmt.Printf("   ENF strength:    %.2f dB\n", result.ENFStrengthDB)
	}
	fmt.Printf("   Splice events:   %d\n", len(result.SpliceTimes))
	fmt.Printf("   Clipping:        %v (%d samples)\n", result.HasClipping, result.ClippedCount)
	fmt.Printf("   SNR:             %.2f dB\n", result.SNRDB)
	fmt.Printf("   Dynamic range:   %.2f dB\n", result.DynamicRangeDB)
}

func handleSamples(svc audioforensics.Service) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: audioforensics samples <audio_file>")
		os.Exit(1)
	}
	path := os.Args[2]

	loadCurrent(svc, path)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := svc.GetAudioSamples(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to get audio samples: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ %d interleaved samples, %dHz, %dch\n", len(result.Samples), result.SampleRate, result.Channels)
}

func handleExport(svc audioforensics.Service) {
	if len(os.Args) < 6 {
		fmt.Println("Usage: audioforensics export <audio_file> <out.wav> <start_s> <end_s>")
		os.Exit(1)
	}
	path := os.Args[2]
	outPath := os.Args[3]

	startS, err := strconv.ParseFloat(os.Args[4], 64)
	if err != nil {
		fmt.Printf("❌ Invalid start_s: %v\n", err)
		os.Exit(1)
	}
	endS, err := strconv.ParseFloat(os.Args[5], 64)
	if err != nil {
		fmt.Printf("❌ Invalid end_s: %v\n", err)
		os.Exit(1)
	}

	loadCurrent(svc, path)

	fmt.Println("\n💾 Exporting range...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := svc.ExportAudio(ctx, outPath, startS, endS); err != nil {
		fmt.Printf("❌ Export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Exported [%.3f, %.3f) to %s\n", startS, endS, outPath)
}

func printUsage() {
	fmt.Println("audioforensics - Audio Forensics Workstation CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  audioforensics load <audio_file>")
	fmt.Println("  audioforensics spectrogram <audio_file> [--max-freq <hz>]")
	fmt.Println("  audioforensics forensics <audio_file>")
	fmt.Println("  audioforensics samples <audio_file>")
	fmt.Println("  audioforensics export <audio_file> <out.wav> <start_s> <end_s>")
}
