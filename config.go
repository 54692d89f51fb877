package pandoc

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Logger receives debug events from the codec and the version layer
// (lossy downgrades, version negotiation). It is silent by default;
// callers that want the events can point it at a writer or swap in their
// own configured instance.
var Logger = logrus.New()

// Process-wide preferred target api version for encoding. Set once from
// the environment at startup or via SetPreferredAPIVersion; concurrent
// mutation is unsupported, callers needing per-call control should set
// the document's own api version instead.
var preferredAPI Version

func init() {
	Logger.SetOutput(io.Discard)

	env := viper.New()
	_ = env.BindEnv("pandoc_version", "PANDOC_VERSION")
	s := env.GetString("pandoc_version")
	if s == "" {
		return
	}
	release, err := ParseVersion(s)
	if err != nil {
		Logger.WithField("PANDOC_VERSION", s).WithError(err).Debug("ignoring unparsable preferred version")
		return
	}
	api, err := RequiredAPIVersion(release)
	if err != nil {
		Logger.WithField("PANDOC_VERSION", s).WithError(err).Debug("ignoring unsupported preferred version")
		return
	}
	preferredAPI = api
	Logger.WithFields(logrus.Fields{"release": release, "api": api}).Debug("preferred target version from environment")
}

// SetPreferredAPIVersion overrides the target api version used when
// encoding any document. A nil version clears the override so documents
// encode for their own declared version again.
func SetPreferredAPIVersion(v Version) error {
	if v == nil {
		preferredAPI = nil
		return nil
	}
	if len(v) < 2 {
		return &ArityError{Name: "pandoc-api-version", Want: 2, Got: len(v)}
	}
	if v.Compare(MinAPIVersion) < 0 {
		return &UnsupportedVersionError{Version: v}
	}
	preferredAPI = v
	return nil
}

// PreferredAPIVersion returns the process-wide target override, or nil if
// none is set.
func PreferredAPIVersion() Version { return preferredAPI }

// effectiveVersion resolves the target api version for one encode call:
// the process-wide override wins, then the document's declared version,
// then the newest supported version.
func effectiveVersion(declared Version) Version {
	if preferredAPI != nil {
		return preferredAPI
	}
	if declared != nil {
		return declared
	}
	return APIVersion
}
