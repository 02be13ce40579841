package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	binaryName = "trivia"

	// maxDownload caps a single release download.
	maxDownload = 64 << 20
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Stage names a step of Update, reported through UpdateOptions.Progress.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateOptions controls Update. An empty TargetVersion means the latest
// release. Progress may be nil.
type UpdateOptions struct {
	CurrentVersion string
	TargetVersion  string
	Progress       func(stage Stage, msg string)
}

// release locates the downloadable files of one tagged release.
type release struct {
	tag       string
	asset     string
	archive   string
	checksums string
}

func (c *Checker) release(tag string) (release, error) {
	asset, err := assetName(c.goos, c.goarch)
	if err != nil {
		return release{}, err
	}
	base := fmt.Sprintf("%s/%s/%s/releases/download/%s", c.downloadBaseURL, c.owner, c.repo, tag)
	return release{
		tag:       tag,
		asset:     asset,
		archive:   base + "/" + asset,
		checksums: base + "/checksums.txt",
	}, nil
}

// Update replaces the running executable with a release build and returns
// the installed tag.
func (c *Checker) Update(ctx context.Context, opts UpdateOptions) (string, error) {
	report := opts.Progress
	if report == nil {
		report = func(Stage, string) {}
	}
	if opts.CurrentVersion == "" || opts.CurrentVersion == "(devel)" {
		return "", ErrDevBuild
	}

	tag := opts.TargetVersion
	if tag == "" {
		report(StageCheck, "Looking for a newer release...")
		res, err := c.Check(ctx, &CheckInput{Version: opts.CurrentVersion})
		if err != nil {
			return "", fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return "", ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	rel, err := c.release(tag)
	if err != nil {
		return "", err
	}

	report(StageDownload, "Downloading "+rel.asset+"...")
	archive, err := c.fetch(ctx, rel.archive)
	if err != nil {
		return "", fmt.Errorf("download archive: %w", err)
	}
	sums, err := c.fetch(ctx, rel.checksums)
	if err != nil {
		return "", fmt.Errorf("download checksums: %w", err)
	}

	report(StageVerify, "Verifying checksum...")
	want, err := checksumFor(sums, rel.asset)
	if err != nil {
		return "", err
	}
	if err := verifyChecksum(archive, want); err != nil {
		return "", err
	}
	bin, err := unpack(archive, rel.asset)
	if err != nil {
		return "", fmt.Errorf("unpack %s: %w", rel.asset, err)
	}

	report(StageInstall, "Installing...")
	exe, err := c.execPath()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if err := replaceExecutable(exe, bin); err != nil {
		return "", fmt.Errorf("install update: %w", err)
	}

	report(StageDone, "Updated to "+tag)
	return tag, nil
}

// releaseArch maps GOARCH to the architecture names used in release
// archives.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// assetName returns the release archive built for goos/goarch. macOS
// ships a single universal binary.
func assetName(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}

	var osName, ext string
	switch goos {
	case "linux":
		osName, ext = "Linux", ".tar.gz"
	case "windows":
		osName, ext = "Windows", ".zip"
	default:
		return "", fmt.Errorf("no release for operating system %s", goos)
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("no release for architecture %s", goarch)
	}
	return binaryName + "_" + osName + "_" + arch + ext, nil
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownload {
		return nil, fmt.Errorf("GET %s: larger than %d bytes", url, maxDownload)
	}
	return data, nil
}

// checksumFor finds asset in a goreleaser checksums.txt ("<sha256>  <name>"
// per line).
func checksumFor(sums []byte, asset string) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(sums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == asset {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("%w: %s not listed in checksums.txt", ErrChecksum, asset)
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); !strings.EqualFold(got, wantHex) {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// unpack pulls the trivia executable out of a .tar.gz or .zip archive.
func unpack(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return unzipFile(archive, binaryName+".exe")
	}
	return untarFile(archive, binaryName)
}

func untarFile(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not found in archive", name)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			return io.ReadAll(io.LimitReader(tr, maxDownload))
		}
	}
}

func unzipFile(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(io.LimitReader(rc, maxDownload))
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// replaceExecutable writes data next to exe and renames it into place,
// keeping exe's permissions. The rename is atomic on the same filesystem.
func replaceExecutable(exe string, data []byte) error {
	info, err := os.Stat(exe)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(exe), "."+binaryName+"-update-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmpName, exe)
}
