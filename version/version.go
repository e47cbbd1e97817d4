package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fastvideo-cli/fastvideo/filesystem"
	"github.com/fastvideo-cli/fastvideo/network"
	"github.com/fastvideo-cli/fastvideo/util"
	"github.com/fastvideo-cli/fastvideo/where"
	"github.com/metafates/gache"
)

// Repository is the GitHub repository releases are published to.
const Repository = "fastvideo-cli/fastvideo"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// ReleaseURL links to the release page of version.
func ReleaseURL(version string) string {
	return fmt.Sprintf("https://github.com/%s/releases/tag/v%s", Repository, version)
}

// Latest returns the newest released version. The answer is cached for two
// days so the check stays cheap when it runs on every help screen.
func Latest() (version string, err error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	resp, err := network.Client.Get("https://api.github.com/repos/" + Repository + "/releases/latest")
	if err != nil {
		return
	}

	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: %s", resp.Status)
	}

	version, err = decodeTag(resp.Body)
	if err != nil {
		return
	}

	_ = versionCacher.Set(version)
	return
}

func decodeTag(r io.Reader) (string, error) {
	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.NewDecoder(r).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
