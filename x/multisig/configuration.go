package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/x"
)

const (
	// gconfPackage is the configuration key of this extension.
	gconfPackage = "multisig"

	// DefaultMaxOwnerCount is used when no configuration is stored.
	DefaultMaxOwnerCount = 50
)

func init() {
	codec.RegisterMsg(&UpdateConfigurationMsg{}, "multisig/update_configuration")
}

// Configuration holds the runtime parameters of the multisig extension.
type Configuration struct {
	Metadata quorum.Metadata `json:"metadata"`
	// Owner can change the configuration.
	Owner quorum.Address `json:"owner"`
	// MaxOwnerCount limits the number of owners of a new wallet.
	MaxOwnerCount uint32 `json:"max_owner_count"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.MaxOwnerCount == 0 {
		errs = errors.AppendField(errs, "MaxOwnerCount", errors.Wrap(errors.ErrInput, "must be greater than zero"))
	}
	return errs
}

func (c *Configuration) GetOwner() quorum.Address {
	return c.Owner
}

// loadConf returns the stored configuration or the default one.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, gconfPackage, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{
			Metadata:      quorum.Metadata{Schema: 1},
			MaxOwnerCount: DefaultMaxOwnerCount,
		}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// UpdateConfigurationMsg changes the non zero fields of the configuration.
type UpdateConfigurationMsg struct {
	Metadata quorum.Metadata
	Patch    *Configuration
}

var _ quorum.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return "multisig/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		return errors.AppendField(errs, "Patch", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Patch.Metadata", m.Patch.Metadata.Validate())
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	return errs
}

// NewConfigHandler returns a handler of UpdateConfigurationMsg. Only the
// configuration owner, as set in the genesis, can update it.
func NewConfigHandler(auth x.Authenticator) quorum.Handler {
	return gconf.NewUpdateConfigurationHandler(gconfPackage,
		func() gconf.OwnedConfig { return &Configuration{} },
		auth, nil)
}
