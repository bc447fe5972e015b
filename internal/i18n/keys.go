package i18n

// Message keys. Every key must exist in every language of the catalog.
const (
	KeyLoading         = "LOADING"
	KeyNowPlaying      = "NOW_PLAYING"
	KeyQueued          = "QUEUED"
	KeyPlaylistLoaded  = "PLAYLIST_LOADED"
	KeyPlaylistPartial = "PLAYLIST_PARTIAL"
	KeyQueueFull       = "QUEUE_FULL"
	KeyNoMatches       = "NO_MATCHES"
	KeyLoadFailed      = "LOAD_FAILED"
	KeyResumed         = "RESUMED"
	KeyPlayHelp        = "PLAY_HELP"
	KeyPaused          = "PAUSED"
	KeyNothingPlaying  = "NOTHING_PLAYING"
	KeySkipped         = "SKIPPED"
	KeyStopped         = "STOPPED"
	KeyVolumeSet       = "VOLUME_SET"
	KeyVolumeLocked    = "VOLUME_LOCKED"
	KeyVolumeRange     = "VOLUME_RANGE"
	KeyVolumeLockOn    = "VOLUME_LOCK_ON"
	KeyVolumeLockOff   = "VOLUME_LOCK_OFF"
	KeyNotInVoice      = "NOT_IN_VOICE"
	KeyQueueEmpty      = "QUEUE_EMPTY"
	KeyQueueHeader     = "QUEUE_HEADER"
	KeyQueueMore       = "QUEUE_MORE"

	KeyPlaylistStart    = "PLAYLIST_START"
	KeyPlaylistNotFound = "PLAYLIST_NOT_FOUND"
	KeyPlaylistSaved    = "PLAYLIST_SAVED"
	KeyPlaylistNone     = "PLAYLIST_NONE"
	KeyPlaylistPick     = "PLAYLIST_PICK"
	KeyPlaylistEmpty    = "PLAYLIST_EMPTY"
	KeyPlaylistName     = "PLAYLIST_NAME"

	KeyRebootAnnounce    = "REBOOT_ANNOUNCE_MESSAGE"
	KeyRebootError       = "REBOOT_ERROR_MESSAGE"
	KeyRebootStoreFailed = "REBOOT_STORE_FAILED"
	KeyRebootCleanFailed = "REBOOT_CLEAN_FAILED"
	KeyRebootDone        = "REBOOT_DONE"
	KeyResumeMessage     = "RESUME_MESSAGE"

	KeyGenericError = "GENERIC_ERROR"
	KeyOwnerOnly    = "OWNER_ONLY"
	KeyGuildOnly    = "GUILD_ONLY"

	KeyMissingPermission = "MISSING_PERMISSION"
	KeyPlaylistDeleted   = "PLAYLIST_DELETED"
	KeyPong              = "PONG"
	KeyHelpHeader        = "HELP_HEADER"
	KeyHistoryHeader     = "HISTORY_HEADER"
	KeyHistoryEmpty      = "HISTORY_EMPTY"
)
