package deploy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	bolt "go.etcd.io/bbolt"
)

// Deployment describes a contract instance deployed to a network.
type Deployment struct {
	Artifact  string         `json:"artifact"`
	Address   quorum.Address `json:"address"`
	TxHash    cmn.HexBytes   `json:"tx_hash"`
	Height    int64          `json:"height"`
	Migration int            `json:"migration"`
}

// Registry keeps the last deployment of every artifact, one bucket per
// network.
type Registry struct {
	db *bolt.DB
}

// OpenRegistry opens or creates the registry file at given path.
func OpenRegistry(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "cannot create registry directory: %s", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrState, "cannot open registry %s: %s", path, err)
	}
	return &Registry{db: db}, nil
}

// Close releases the registry file.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Save records a deployment, replacing the previous deployment of the same
// artifact on that network.
func (r *Registry) Save(network string, d Deployment) error {
	if network == "" {
		return errors.Wrap(errors.ErrEmpty, "network")
	}
	if d.Artifact == "" {
		return errors.Wrap(errors.ErrEmpty, "artifact")
	}
	if err := d.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(network))
		if err != nil {
			return errors.Wrapf(errors.ErrState, "cannot create network bucket: %s", err)
		}
		return b.Put([]byte(d.Artifact), raw)
	})
}

// Load returns the last deployment of an artifact on a network. It returns
// ErrNotFound if the artifact was never deployed there.
func (r *Registry) Load(network, artifact string) (*Deployment, error) {
	var d Deployment
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(network))
		if b == nil {
			return errors.Wrapf(errors.ErrNotFound, "network %q", network)
		}
		raw := b.Get([]byte(artifact))
		if raw == nil {
			return errors.Wrapf(errors.ErrNotFound, "%s on %s", artifact, network)
		}
		return unmarshalDeployment(raw, &d)
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all deployments of a network, ordered by artifact name.
func (r *Registry) List(network string) ([]Deployment, error) {
	var res []Deployment
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(network))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var d Deployment
			if err := unmarshalDeployment(v, &d); err != nil {
				return errors.Wrapf(err, "%s", k)
			}
			res = append(res, d)
			return nil
		})
	})
	return res, err
}

// Networks returns the names of all networks with deployments, in
// alphabetical order.
func (r *Registry) Networks() ([]string, error) {
	var names []string
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	return names, err
}

// Reset forgets all deployments of a network.
func (r *Registry) Reset(network string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(network))
		if err == bolt.ErrBucketNotFound {
			return nil
		}
		return err
	})
}

func unmarshalDeployment(raw []byte, d *Deployment) error {
	if err := json.Unmarshal(raw, d); err != nil {
		return errors.Wrapf(errors.ErrState, "corrupted deployment: %s", err)
	}
	return nil
}
