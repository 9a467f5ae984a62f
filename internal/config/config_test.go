package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WebAddr != DefaultConfig().WebAddr {
		t.Fatalf("WebAddr = %q, want %q", cfg.WebAddr, DefaultConfig().WebAddr)
	}
	if cfg.ReviewEpisodes != DefaultConfig().ReviewEpisodes {
		t.Fatalf("ReviewEpisodes = %d, want %d", cfg.ReviewEpisodes, DefaultConfig().ReviewEpisodes)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"web_addr": "127.0.0.1:9000", "review_episodes": 12}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WebAddr != "127.0.0.1:9000" {
		t.Fatalf("WebAddr = %q, want %q", cfg.WebAddr, "127.0.0.1:9000")
	}
	if cfg.ReviewEpisodes != 12 {
		t.Fatalf("ReviewEpisodes = %d, want 12", cfg.ReviewEpisodes)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_ExtraImportantTools(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"extra_important_tools": ["terraform", "ansible"]}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.ExtraImportantTools) != 2 {
		t.Fatalf("ExtraImportantTools length = %d, want 2", len(cfg.ExtraImportantTools))
	}
	if cfg.ExtraImportantTools[0] != "terraform" {
		t.Errorf("ExtraImportantTools[0] = %q, want %q", cfg.ExtraImportantTools[0], "terraform")
	}
	if cfg.ExtraImportantTools[1] != "ansible" {
		t.Errorf("ExtraImportantTools[1] = %q, want %q", cfg.ExtraImportantTools[1], "ansible")
	}
}

func TestLoad_DisabledToolsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DisabledTools) != 0 {
		t.Fatalf("DisabledTools = %v, want nil or empty", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	// Global config
	globalConfig := `{"review_episodes": 8, "extra_important_tools": ["terraform"]}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Repo config at repoRoot/.trail/config.json
	trailDir := filepath.Join(repoRoot, ".trail")
	if err := os.MkdirAll(trailDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"review_episodes": 3, "extra_important_tools": ["just"]}`
	if err := os.WriteFile(filepath.Join(trailDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// Repo overrides scalar
	if cfg.ReviewEpisodes != 3 {
		t.Errorf("ReviewEpisodes = %d, want 3 (repo override)", cfg.ReviewEpisodes)
	}

	// Arrays merged
	if len(cfg.ExtraImportantTools) != 2 {
		t.Errorf("ExtraImportantTools length = %d, want 2", len(cfg.ExtraImportantTools))
	}
}

func TestLoadWithRepo_OnlyGlobal(t *testing.T) {
	globalDir := t.TempDir()
	repoDir := t.TempDir() // No config file

	globalConfig := `{"web_addr": "127.0.0.1:9000", "extra_important_tools": ["terraform"]}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoDir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if cfg.WebAddr != "127.0.0.1:9000" {
		t.Errorf("WebAddr = %q, want %q", cfg.WebAddr, "127.0.0.1:9000")
	}
	if len(cfg.ExtraImportantTools) != 1 || cfg.ExtraImportantTools[0] != "terraform" {
		t.Errorf("ExtraImportantTools = %v, want [terraform]", cfg.ExtraImportantTools)
	}
}

func TestLoadWithRepo_OnlyRepo(t *testing.T) {
	globalDir := t.TempDir() // No config file
	repoRoot := t.TempDir()

	// Repo config at repoRoot/.trail/config.json
	trailDir := filepath.Join(repoRoot, ".trail")
	if err := os.MkdirAll(trailDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"disabled_tools": ["trail_capture", "trail_stats"]}`
	if err := os.WriteFile(filepath.Join(trailDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// Default value preserved
	if cfg.WebAddr != DefaultConfig().WebAddr {
		t.Errorf("WebAddr = %q, want %q (default)", cfg.WebAddr, DefaultConfig().WebAddr)
	}
	if len(cfg.DisabledTools) != 2 {
		t.Errorf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
}

func TestLoadWithRepo_NeitherPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoDir := t.TempDir()

	cfg, err := LoadWithRepo(globalDir, repoDir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// All defaults
	if cfg.ReviewEpisodes != DefaultConfig().ReviewEpisodes {
		t.Errorf("ReviewEpisodes = %d, want %d", cfg.ReviewEpisodes, DefaultConfig().ReviewEpisodes)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Errorf("DisabledTools = %v, want empty", cfg.DisabledTools)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{WebAddr: "127.0.0.1:7979", ReviewEpisodes: 5}
	overlay := &Config{ReviewEpisodes: 2} // WebAddr is "" (zero value)

	result := Merge(base, overlay)

	if result.ReviewEpisodes != 2 {
		t.Errorf("ReviewEpisodes = %d, want 2 (overlay)", result.ReviewEpisodes)
	}
	if result.WebAddr != "127.0.0.1:7979" {
		t.Errorf("WebAddr = %q, want base value (overlay is zero)", result.WebAddr)
	}
}

func TestMerge_BooleanOr(t *testing.T) {
	base := &Config{AllowUnsafePaths: true}
	overlay := &Config{AllowUnsafePaths: false}

	result := Merge(base, overlay)

	if !result.AllowUnsafePaths {
		t.Error("AllowUnsafePaths should be true (base OR overlay)")
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{ExtraImportantTools: []string{"terraform", "ansible"}}
	overlay := &Config{ExtraImportantTools: []string{"ansible", "just"}}

	result := Merge(base, overlay)

	if len(result.ExtraImportantTools) != 3 {
		t.Errorf("ExtraImportantTools length = %d, want 3 (merged, deduped)", len(result.ExtraImportantTools))
	}

	// Check all three are present
	has := make(map[string]bool)
	for _, s := range result.ExtraImportantTools {
		has[s] = true
	}
	for _, want := range []string{"terraform", "ansible", "just"} {
		if !has[want] {
			t.Errorf("ExtraImportantTools missing %q", want)
		}
	}
}

func TestFindRepoConfig_InCurrentDir(t *testing.T) {
	tmpDir := t.TempDir()
	trailDir := filepath.Join(tmpDir, ".trail")
	if err := os.MkdirAll(trailDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	configPath := filepath.Join(trailDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	found := FindRepoConfig(tmpDir)
	if found != configPath {
		t.Errorf("FindRepoConfig() = %q, want %q", found, configPath)
	}
}

func TestFindRepoConfig_InParentDir(t *testing.T) {
	// Create: tmpDir/.trail/config.json
	//         tmpDir/subdir/deeper/
	tmpDir := t.TempDir()
	trailDir := filepath.Join(tmpDir, ".trail")
	if err := os.MkdirAll(trailDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	configPath := filepath.Join(trailDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	subdir := filepath.Join(tmpDir, "subdir", "deeper")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	// Start from subdir, should find config in parent
	found := FindRepoConfig(subdir)
	if found != configPath {
		t.Errorf("FindRepoConfig() = %q, want %q", found, configPath)
	}
}

func TestFindRepoConfig_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	// No .trail directory

	found := FindRepoConfig(tmpDir)
	if found != "" {
		t.Errorf("FindRepoConfig() = %q, want empty string", found)
	}
}

func TestLoadWithRepo_WalksUpward(t *testing.T) {
	// Create: tmpDir/.trail/config.json with extra tools
	//         tmpDir/subdir/
	tmpDir := t.TempDir()
	globalDir := t.TempDir() // Separate global dir

	trailDir := filepath.Join(tmpDir, ".trail")
	if err := os.MkdirAll(trailDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"extra_important_tools": ["just"]}`
	if err := os.WriteFile(filepath.Join(trailDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	subdir := filepath.Join(tmpDir, "subdir")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	// Load from subdir, should find repo config in parent
	cfg, err := LoadWithRepo(globalDir, subdir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if len(cfg.ExtraImportantTools) != 1 || cfg.ExtraImportantTools[0] != "just" {
		t.Errorf("ExtraImportantTools = %v, want [just]", cfg.ExtraImportantTools)
	}
}
