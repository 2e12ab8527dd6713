package api

import (
	"fmt"
)

var validCheckHost = map[string]bool{
	CheckHostYes:         true,
	CheckHostNo:          true,
	CheckHostFingerprint: true,
}

var validAuthKinds = map[string]bool{
	AuthKindKey:      true,
	AuthKindPassword: true,
}

// Validate checks the document for configuration errors. Every step must
// carry exactly one operation spec; a step with zero or several is rejected
// here rather than at execution time.
func (d *Document) Validate() error {
	if len(d.Steps) == 0 {
		return fmt.Errorf("runbook has no steps")
	}

	for i := range d.Steps {
		if err := d.Steps[i].validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, d.Steps[i].DisplayName(), err)
		}
	}

	return nil
}

func (s *Step) validate() error {
	count := 0
	if s.Shell != nil {
		count++
	}
	if s.Exec != nil {
		count++
	}
	if s.SSH != nil {
		count++
	}
	if s.File != nil {
		count++
	}
	switch {
	case count == 0:
		return fmt.Errorf("no operation spec (one of shell, exec, ssh, file is required)")
	case count > 1:
		return fmt.Errorf("multiple operation specs (exactly one of shell, exec, ssh, file is allowed)")
	}

	switch {
	case s.Shell != nil:
		if s.Shell.Command == "" {
			return fmt.Errorf("shell.command is required")
		}
	case s.Exec != nil:
		if s.Exec.Cmd == "" {
			return fmt.Errorf("exec.cmd is required")
		}
	case s.SSH != nil:
		return s.SSH.validate()
	case s.File != nil:
		if s.File.Dest == "" {
			return fmt.Errorf("file.dest is required")
		}
	}
	return nil
}

func (s *SSHSpec) validate() error {
	if s.Host == "" {
		return fmt.Errorf("ssh.host is required")
	}
	if s.Command == "" {
		return fmt.Errorf("ssh.command is required")
	}
	if s.CheckHost != "" && !validCheckHost[s.CheckHost] {
		return fmt.Errorf("ssh.check_host %q is not valid (valid: yes, no, fingerprint)", s.CheckHost)
	}
	if s.Auth != nil {
		if !validAuthKinds[s.Auth.Kind] {
			return fmt.Errorf("ssh.auth.kind %q is not valid (valid: key, password)", s.Auth.Kind)
		}
		if s.Auth.Kind == AuthKindKey && s.Auth.KeyPath == "" {
			return fmt.Errorf("ssh.auth.key_path is required for key authentication")
		}
	}
	return nil
}
