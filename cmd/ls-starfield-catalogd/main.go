// Command ls-starfield-catalogd serves a magnitude-banded star catalog
// directory over HTTP for the viewer to load from.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/version"
)

const metadataFile = "dat_hp_meta.json"

func main() {
	addr := flag.String("addr", ":8870", "Listen address")
	dir := flag.String("dir", "catalog", "Catalog directory holding metadata and band files")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel)).WithPrefix("catalogd")

	// Reject a broken catalog at startup rather than serving garbage.
	meta, err := loadMetadata(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("catalog: %d bands, vmag %.1f..%.1f", len(meta.Bands), meta.VmagRange[0], meta.VmagRange[1])

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	_ = router.SetTrustedProxies(nil)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version.Version,
			"bands":   len(meta.Bands),
		})
	})

	// Band list as parsed, for quick inspection.
	router.GET("/bands", func(c *gin.Context) {
		c.JSON(http.StatusOK, meta.Bands)
	})

	// The catalog files themselves, under the same layout the loader
	// expects: /hp/<metadata> and /hp/<band>. Pre-compressed band files are
	// served with a gzip content encoding so clients decompress natively.
	router.GET("/hp/:file", func(c *gin.Context) {
		name := c.Param("file")
		if name != filepath.Base(name) || name == "." || name == ".." {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad file name"})
			return
		}
		path := filepath.Join(*dir, name)
		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such file"})
			return
		}
		c.Header("Content-Type", "application/json")
		if strings.HasSuffix(name, ".gz") {
			c.Header("Content-Encoding", "gzip")
		}
		c.File(path)
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening on %s, serving %s", *addr, *dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve: %v", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown: %v", err)
	}
	logger.Info("stopped")
}

// loadMetadata parses the catalog metadata and verifies every band file it
// names exists in the directory.
func loadMetadata(dir string) (catalog.Metadata, error) {
	path := filepath.Join(dir, metadataFile)
	body, err := os.ReadFile(path)
	if err != nil {
		return catalog.Metadata{}, fmt.Errorf("read metadata: %w", err)
	}

	meta, err := catalog.ParseMetadata("file://"+path, body)
	if err != nil {
		return catalog.Metadata{}, err
	}

	for _, band := range meta.Bands {
		if _, err := os.Stat(filepath.Join(dir, band.File)); err != nil {
			return catalog.Metadata{}, fmt.Errorf("band file %s: %w", band.File, err)
		}
	}
	return meta, nil
}
