package git

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoBranch means no candidate in the resolution chain produced a usable
// reference. There is no sensible default, so the run aborts.
var ErrNoBranch = errors.New("no branch could be resolved")

// BranchResolver picks the branch reference a digest run should query.
// Resolution is recomputed every run; nothing is persisted.
type BranchResolver struct {
	repo     *gogit.Repository
	remote   string
	override string
}

// NewBranchResolver opens the repository at repoPath. The open doubles as
// repository validation before any subprocess work happens.
func NewBranchResolver(repoPath, remote, override string) (*BranchResolver, error) {
	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", repoPath, err)
	}
	return &BranchResolver{repo: repo, remote: remote, override: override}, nil
}

// Resolve walks the candidate chain: explicit override, the remote's HEAD
// pointer, then the checked-out branch. A probe miss means "not found" and
// moves on to the next candidate; only an empty chain is an error.
func (r *BranchResolver) Resolve() (string, error) {
	candidates := []func() (string, bool){
		r.fromOverride,
		r.fromRemoteHead,
		r.fromCurrentBranch,
	}
	for _, candidate := range candidates {
		if ref, ok := candidate(); ok {
			return ref, nil
		}
	}
	return "", ErrNoBranch
}

func (r *BranchResolver) fromOverride() (string, bool) {
	name := strings.TrimSpace(r.override)
	if name == "" {
		return "", false
	}
	if r.remoteRefExists(name) {
		return r.remote + "/" + name, true
	}
	return "", false
}

// fromRemoteHead follows refs/remotes/<remote>/HEAD, the symbolic pointer
// written by `git clone` and `git remote set-head`.
func (r *BranchResolver) fromRemoteHead() (string, bool) {
	ref, err := r.repo.Reference(plumbing.NewRemoteHEADReferenceName(r.remote), false)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return "", false
	}
	target := ref.Target()
	if !target.IsRemote() {
		return "", false
	}
	if _, err := r.repo.Reference(target, true); err != nil {
		return "", false
	}
	return target.Short(), true
}

func (r *BranchResolver) fromCurrentBranch() (string, bool) {
	head, err := r.repo.Head()
	if err != nil || head.Name() == plumbing.HEAD {
		// Unborn or detached HEAD gives us no branch name to work with.
		return "", false
	}
	branch := head.Name().Short()
	if r.remoteRefExists(branch) {
		return r.remote + "/" + branch, true
	}
	if _, err := r.repo.Reference(head.Name(), true); err == nil {
		return branch, true
	}
	return "", false
}

func (r *BranchResolver) remoteRefExists(branch string) bool {
	_, err := r.repo.Reference(plumbing.NewRemoteReferenceName(r.remote, branch), true)
	return err == nil
}
