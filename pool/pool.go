// Package pool manages the metadata containers of a storage pool in blob
// storage: creating the root container (MDC0), opening it with the format
// version check, and sweeping all containers for compatibility.
package pool

import (
	"context"
	"io"
	"os"
	"sort"
	"time"

	"github.com/PowerDNS/simpleblob"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mpxstore/mdckit/mdc"
	"github.com/mpxstore/mdckit/mdcver"
	"github.com/mpxstore/mdckit/omf"
)

var (
	ErrExists   = errors.New("pool already exists")
	ErrNotFound = errors.New("pool not found")
)

// Pool is a named storage pool whose metadata containers live in blob
// storage.
type Pool struct {
	name string
	st   simpleblob.Interface
	l    logrus.FieldLogger
}

func New(name string, st simpleblob.Interface) *Pool {
	return &Pool{
		name: name,
		st:   st,
		l:    logrus.WithField("pool", name),
	}
}

func (p *Pool) Name() string {
	return p.name
}

func (p *Pool) prefix() string {
	return p.name + "__"
}

// Scan lists the metadata containers of this pool, oldest first per index.
// Blobs with unparseable names are skipped with a warning.
func (p *Pool) Scan(ctx context.Context) ([]mdc.NameInfo, error) {
	blobs, err := p.st.List(ctx, p.prefix())
	if err != nil {
		return nil, errors.Wrap(err, "list containers")
	}
	var nis []mdc.NameInfo
	for _, name := range blobs.Names() {
		ni, err := mdc.ParseName(name)
		if err != nil {
			p.l.WithError(err).WithField("blob", name).Warn("Skipping unrecognised blob")
			continue
		}
		nis = append(nis, ni)
	}
	sort.Slice(nis, func(i, j int) bool {
		if nis[i].Index != nis[j].Index {
			return nis[i].Index < nis[j].Index
		}
		return nis[i].Timestamp.Before(nis[j].Timestamp)
	})
	return nis, nil
}

// Create initialises the pool by writing MDC0 with a version record and the
// pool configuration. It fails with ErrExists when the pool already has
// containers in storage.
func (p *Pool) Create(ctx context.Context, cfg omf.PoolConfigRecord, writtenBy string) (string, error) {
	existing, err := p.Scan(ctx)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", errors.Wrapf(ErrExists, "pool %q", p.name)
	}

	w := mdc.NewWriter(writtenBy)
	if err := w.Append(omf.TypePoolConfig, cfg.Marshal()); err != nil {
		return "", err
	}
	name := mdc.Name(p.name, 0, time.Now())
	if err := w.Store(ctx, p.st, name); err != nil {
		return "", err
	}
	p.l.WithFields(logrus.Fields{
		"blob":    name,
		"version": w.Version(),
	}).Info("Pool created")
	return name, nil
}

// OpenInfo describes the state of a pool's root container.
type OpenInfo struct {
	Blob      string
	Version   mdcver.Version
	Compat    mdc.Compat
	Comment   string // registry comment, empty when the version is unknown
	WrittenBy string
	Config    omf.PoolConfigRecord // only set when the version is understood
}

// Open loads the newest MDC0 of the pool and runs the version check.
// An unknown content version is not an error: Compat reports it and Config
// stays empty, the policy (refuse, read-only) is the caller's. Structural
// corruption and storage failures are errors.
func (p *Pool) Open(ctx context.Context) (OpenInfo, error) {
	var info OpenInfo

	nis, err := p.Scan(ctx)
	if err != nil {
		return info, err
	}
	var root *mdc.NameInfo
	for i := range nis {
		if nis[i].Index == 0 {
			root = &nis[i] // keep the newest, list is sorted
		}
	}
	if root == nil {
		return info, errors.Wrapf(ErrNotFound, "pool %q has no MDC0", p.name)
	}

	r, err := mdc.Fetch(ctx, p.st, root.FullName)
	if err != nil {
		return info, err
	}
	info.Blob = root.FullName
	info.Version = r.Version()
	info.Compat = r.Compat()
	info.WrittenBy = r.WrittenBy()
	info.Comment, _ = r.Comment()

	if info.Compat == mdc.CompatUnknown {
		p.l.WithFields(logrus.Fields{
			"blob":    root.FullName,
			"version": info.Version,
		}).Warn("Pool MDC0 written at unknown content version")
		return info, nil
	}

	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return info, errors.Wrap(err, "read MDC0")
		}
		if rec.Type != omf.TypePoolConfig {
			continue
		}
		if err := info.Config.Unmarshal(rec.Payload); err != nil {
			return info, errors.Wrap(err, "decode pool config")
		}
		break
	}
	return info, nil
}

// ListPools returns the names of all pools that have containers in storage.
func ListPools(ctx context.Context, st simpleblob.Interface) ([]string, error) {
	blobs, err := st.List(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "list storage")
	}
	seen := make(map[string]bool)
	var pools []string
	for _, name := range blobs.Names() {
		ni, err := mdc.ParseName(name)
		if err != nil {
			continue
		}
		if !seen[ni.Pool] {
			seen[ni.Pool] = true
			pools = append(pools, ni.Pool)
		}
	}
	sort.Strings(pools)
	return pools, nil
}

// IsNotExist reports whether err means a missing blob or pool.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
