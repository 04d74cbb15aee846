package tools

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/openclaude/openclaude/internal/agentlog"
)

// backupFile writes a best-effort copy of path's current contents under
// toolCtx.BackupBaseDir before an overwrite. A backup failure is logged and
// otherwise ignored: write/edit success is never conditioned on the backup
// succeeding, so a backup failure never blocks the write itself.
func backupFile(toolCtx ToolContext, path string) {
	if toolCtx.BackupBaseDir == "" || toolCtx.SessionID == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	original, err := os.ReadFile(path)
	if err != nil {
		agentlog.Logger.Warn().Str("path", path).Err(err).Msg("backup read failed")
		return
	}

	sum := sha256.Sum256([]byte(path))
	suffix := hex.EncodeToString(sum[:3])
	backupDir := filepath.Join(toolCtx.BackupBaseDir, toolCtx.SessionID, "backup")
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		agentlog.Logger.Warn().Str("dir", backupDir).Err(err).Msg("backup mkdir failed")
		return
	}
	dest := filepath.Join(backupDir, filepath.Base(path)+"-"+suffix)
	if err := os.WriteFile(dest, original, 0o600); err != nil {
		agentlog.Logger.Warn().Str("dest", dest).Err(err).Msg("backup write failed")
	}
}

// writeAtomic writes data to a sibling temp file and renames it over path,
// the same pattern the session store uses for its journal save.
func writeAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
