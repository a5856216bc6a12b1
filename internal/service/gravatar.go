package service

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v2"
	"go.uber.org/zap"
)

const gravatarBase = "https://www.gravatar.com/avatar"

// Gravatar looks up avatar URLs by email. Lookups are best-effort: any
// failure yields an empty URL and the caller moves on without one.
// Results are cached so repeated signups with the same domain of
// emails don't hammer the gravatar API
type Gravatar struct {
	cache  *ttlcache.Cache
	client *http.Client
}

func NewGravatar() *Gravatar {
	cache := ttlcache.NewCache()
	cache.SetTTL(time.Hour)
	cache.SkipTTLExtensionOnHit(true)

	return &Gravatar{
		cache: cache,
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

// Lookup returns the avatar URL for email, or an empty string when
// none exists or the lookup fails
func (g *Gravatar) Lookup(email string) string {
	if cached, err := g.cache.Get(email); err == nil {
		return cached.(string)
	}

	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	url := fmt.Sprintf("%s/%s?s=200&d=404", gravatarBase, hex.EncodeToString(sum[:]))

	resp, err := g.client.Head(url)
	if err != nil {
		zap.L().Debug("Gravatar lookup failed", zap.Error(err))
		return ""
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.cache.Set(email, "")
		return ""
	}

	g.cache.Set(email, url)
	return url
}
