package api

const (
	OpShell = "shell"
	OpExec  = "exec"
	OpSSH   = "ssh"
	OpFile  = "file"

	AuthKindKey      = "key"
	AuthKindPassword = "password"

	CheckHostYes         = "yes"
	CheckHostNo          = "no"
	CheckHostFingerprint = "fingerprint"
)

// Document is the runbook file format. All string fields inside steps are
// templates, resolved against the globals tree at execution time.
type Document struct {
	Version int            `yaml:"version"`
	Globals map[string]any `yaml:"globals"`
	Steps   []Step         `yaml:"steps"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// Step defines a single unit of work. Exactly one of the operation specs
// (Shell, Exec, SSH, File) must be populated.
type Step struct {
	Name string `yaml:"name"`
	When *bool  `yaml:"when,omitempty"`

	// Reserved for future scheduling semantics; execution is fire-once.
	Timeout uint64 `yaml:"timeout,omitempty"`
	Retry   uint   `yaml:"retry,omitempty"`

	Env map[string]string `yaml:"env,omitempty"`

	Shell *ShellSpec `yaml:"shell,omitempty"`
	Exec  *ExecSpec  `yaml:"exec,omitempty"`
	SSH   *SSHSpec   `yaml:"ssh,omitempty"`
	File  *FileSpec  `yaml:"file,omitempty"`
}

// ShellSpec runs a command string through a shell.
type ShellSpec struct {
	Command string            `yaml:"command"`
	Env     map[string]string `yaml:"env,omitempty"`
	Cwd     string            `yaml:"cwd,omitempty"`
	Shell   string            `yaml:"shell,omitempty"` // invocation prefix, default "bash -c"
}

// ExecSpec runs a program with an argument vector, no shell involved.
type ExecSpec struct {
	Cmd  string            `yaml:"cmd"`
	Args []string          `yaml:"args,omitempty"`
	Env  map[string]string `yaml:"env,omitempty"`
	Cwd  string            `yaml:"cwd,omitempty"`
}

// SSHAuth describes remote authentication.
type SSHAuth struct {
	Kind       string `yaml:"kind"` // "key" or "password"
	Password   string `yaml:"password,omitempty"`
	KeyPath    string `yaml:"key_path,omitempty"`
	Passphrase string `yaml:"passphrase,omitempty"`
}

// SSHSpec runs a command on a remote host via the system ssh client.
type SSHSpec struct {
	Host      string            `yaml:"host"`
	User      string            `yaml:"user,omitempty"`
	Auth      *SSHAuth          `yaml:"auth,omitempty"`
	Command   string            `yaml:"command"`
	Env       map[string]string `yaml:"env,omitempty"`
	CheckHost string            `yaml:"check_host,omitempty"` // "yes", "no" or "fingerprint"
}

// FileSpec materializes rendered content at a destination path.
type FileSpec struct {
	Dest    string `yaml:"dest"`
	Content string `yaml:"content"`
	Backup  bool   `yaml:"backup,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // octal string, e.g. "0644"
}

// Kind returns the operation kind of the single populated spec, or "" when
// none is populated.
func (s *Step) Kind() string {
	switch {
	case s.Shell != nil:
		return OpShell
	case s.Exec != nil:
		return OpExec
	case s.SSH != nil:
		return OpSSH
	case s.File != nil:
		return OpFile
	}
	return ""
}

// DisplayName returns the step name, falling back to the operation kind.
func (s *Step) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if k := s.Kind(); k != "" {
		return k
	}
	return "step"
}
