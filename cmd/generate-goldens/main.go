// Command generate-goldens renders every scene under testdata/scenes and
// writes the ASCII result to testdata/goldens as markdown with YAML front
// matter.
package main

import (
	"bytes"
	"crypto/sha256"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/monogfx/internal/scene"
)

// GoldenMetadata represents the YAML front matter in golden files.
// This should match the struct in golden_test.go
type GoldenMetadata struct {
	Scene          string `yaml:"scene"`
	Description    string `yaml:"description,omitempty"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Generated      string `yaml:"generated"`
	Generator      string `yaml:"generator"`
	ChecksumSHA256 string `yaml:"checksum_sha256"`
}

var (
	sceneDir = flag.String("scenes", "testdata/scenes", "Scene directory")
	outDir   = flag.String("out", "testdata/goldens", "Output directory")
	strict   = flag.Bool("strict", false, "Exit on any failing scene")
)

func main() {
	flag.Parse()

	paths, err := filepath.Glob(filepath.Join(*sceneDir, "*.yaml"))
	if err != nil {
		log.Fatalf("Failed to list scenes: %v", err)
	}
	if len(paths) == 0 {
		log.Fatalf("No scenes found in %s", *sceneDir)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory %s: %v", *outDir, err)
	}

	for _, p := range paths {
		if err := generateGoldenFile(p); err != nil {
			if *strict {
				log.Fatalf("Failed to generate golden file: %v", err)
			}
			log.Printf("Warning: %v", err)
		}
	}

	log.Println("Golden file generation complete")
}

func generateGoldenFile(scenePath string) error {
	name := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
	outFile := filepath.Join(*outDir, name+".md")

	log.Printf("Generating %s.md", name)

	s, err := scene.LoadFile(scenePath)
	if err != nil {
		return err
	}
	c, err := s.Render(filepath.Dir(scenePath))
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	defer c.Close()

	art := strings.TrimSuffix(c.String(), "\n")

	metadata := GoldenMetadata{
		Scene:          name,
		Description:    s.Description,
		Width:          s.Width,
		Height:         s.Height,
		Generated:      time.Now().UTC().Format("2006-01-02"),
		Generator:      "generate-goldens",
		ChecksumSHA256: calculateChecksum(art),
	}

	yamlData, err := yaml.Marshal(&metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlData)
	buf.WriteString("---\n\n")
	buf.WriteString("```text\n")
	buf.WriteString(art)
	buf.WriteString("\n```\n")

	if err := os.WriteFile(outFile, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", outFile, err)
	}
	return nil
}

func calculateChecksum(data string) string {
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
