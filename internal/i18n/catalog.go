package i18n

var english = map[string]string{
	KeyLoading:         "⌚ Loading... `[%s]`",
	KeyNowPlaying:      "▶️ Now playing %s",
	KeyQueued:          "🎶 Queued %s (position %d)",
	KeyPlaylistLoaded:  "🎶 Loaded %d track(s) from %s",
	KeyPlaylistPartial: "⚠️ Loaded %d of %d track(s), the queue is full (max %d)",
	KeyQueueFull:       "⚠️ The queue is full (max %d)",
	KeyNoMatches:       "❌ No matches found for `%s`",
	KeyLoadFailed:      "❌ Failed to load `%s`: %s",
	KeyResumed:         "✅ Resumed paused stream.",
	KeyPlayHelp:        "⚠️ You must give me something to play.\n`%[1]splay <URL>` - Plays media at the provided URL\n`%[1]splay <search term>` - Searches for the first result of the search term",
	KeyPaused:          "⏸ Playback paused.",
	KeyNothingPlaying:  "⚠️ Nothing is playing right now.",
	KeySkipped:         "⏭ Skipped.",
	KeyStopped:         "⏹ Playback stopped. Queue cleared.",
	KeyVolumeSet:       "🔊 Volume set to %d.",
	KeyVolumeLocked:    "🔒 The volume is locked on this server.",
	KeyVolumeRange:     "⚠️ Volume must be between %d and %d.",
	KeyVolumeLockOn:    "🔒 Volume locked.",
	KeyVolumeLockOff:   "🔓 Volume unlocked.",
	KeyNotInVoice:      "⚠️ Join a voice channel first.",
	KeyQueueEmpty:      "The queue is empty.",
	KeyQueueHeader:     "**Now playing:** %s\n**Up next (%d):**",
	KeyQueueMore:       "...and %d more",

	KeyPlaylistStart:    "Starting load of playlist %s",
	KeyPlaylistNotFound: "⚠️ That playlist no longer exists.",
	KeyPlaylistSaved:    "💾 Saved %d track(s) as playlist %s",
	KeyPlaylistNone:     "No playlists saved for this server.",
	KeyPlaylistPick:     "Pick a playlist to load",
	KeyPlaylistEmpty:    "⚠️ There is nothing to save.",
	KeyPlaylistName:     "⚠️ A playlist name is required.",

	KeyRebootAnnounce:    "🔄 I'm rebooting for maintenance. Your music will resume shortly.",
	KeyRebootError:       "⚠️ I'm rebooting for maintenance but could not save your queue. Sorry!",
	KeyRebootStoreFailed: "❌ Failed to store for guild %s: %v",
	KeyRebootCleanFailed: "⚠️ Failed to clear old resume data: %v",
	KeyRebootDone:        "✅ Stored %d session(s), %d failed, announced to %d channel(s).",
	KeyResumeMessage:     "✅ I'm back! Resuming %s.",

	KeyGenericError: "❌ Something went wrong, please try again later.",
	KeyOwnerOnly:    "⛔ Only the bot owner can do that.",
	KeyGuildOnly:    "⚠️ This command only works in a server.",

	KeyMissingPermission: "⛔ You need the %s permission to do that.",
	KeyPlaylistDeleted:   "🗑 Deleted playlist %s.",
	KeyPong:              "🏓 Pong! %dms",
	KeyHelpHeader:        "**Commands** (text prefix `%s`)",
	KeyHistoryHeader:     "**Recent commands**",
	KeyHistoryEmpty:      "No commands recorded yet.",
}

var german = map[string]string{
	KeyLoading:         "⌚ Lade... `[%s]`",
	KeyNowPlaying:      "▶️ Jetzt läuft %s",
	KeyQueued:          "🎶 %s eingereiht (Position %d)",
	KeyPlaylistLoaded:  "🎶 %d Titel aus %s geladen",
	KeyPlaylistPartial: "⚠️ %d von %d Titeln geladen, die Warteschlange ist voll (max. %d)",
	KeyQueueFull:       "⚠️ Die Warteschlange ist voll (max. %d)",
	KeyNoMatches:       "❌ Keine Treffer für `%s`",
	KeyLoadFailed:      "❌ `%s` konnte nicht geladen werden: %s",
	KeyResumed:         "✅ Wiedergabe fortgesetzt.",
	KeyPlayHelp:        "⚠️ Du musst mir etwas zum Abspielen geben.\n`%[1]splay <URL>` - Spielt die Medien unter der URL ab\n`%[1]splay <Suchbegriff>` - Sucht nach dem ersten Treffer",
	KeyPaused:          "⏸ Wiedergabe pausiert.",
	KeyNothingPlaying:  "⚠️ Gerade läuft nichts.",
	KeySkipped:         "⏭ Übersprungen.",
	KeyStopped:         "⏹ Wiedergabe gestoppt. Warteschlange geleert.",
	KeyVolumeSet:       "🔊 Lautstärke auf %d gesetzt.",
	KeyVolumeLocked:    "🔒 Die Lautstärke ist auf diesem Server gesperrt.",
	KeyVolumeRange:     "⚠️ Die Lautstärke muss zwischen %d und %d liegen.",
	KeyVolumeLockOn:    "🔒 Lautstärke gesperrt.",
	KeyVolumeLockOff:   "🔓 Lautstärke entsperrt.",
	KeyNotInVoice:      "⚠️ Tritt zuerst einem Sprachkanal bei.",
	KeyQueueEmpty:      "Die Warteschlange ist leer.",
	KeyQueueHeader:     "**Jetzt läuft:** %s\n**Als Nächstes (%d):**",
	KeyQueueMore:       "...und %d weitere",

	KeyPlaylistStart:    "Lade Playlist %s",
	KeyPlaylistNotFound: "⚠️ Diese Playlist existiert nicht mehr.",
	KeyPlaylistSaved:    "💾 %d Titel als Playlist %s gespeichert",
	KeyPlaylistNone:     "Für diesen Server sind keine Playlists gespeichert.",
	KeyPlaylistPick:     "Wähle eine Playlist",
	KeyPlaylistEmpty:    "⚠️ Es gibt nichts zu speichern.",
	KeyPlaylistName:     "⚠️ Ein Playlist-Name wird benötigt.",

	KeyRebootAnnounce:    "🔄 Ich starte für Wartungsarbeiten neu. Deine Musik geht gleich weiter.",
	KeyRebootError:       "⚠️ Ich starte für Wartungsarbeiten neu, konnte deine Warteschlange aber nicht sichern. Entschuldigung!",
	KeyRebootStoreFailed: "❌ Speichern für Server %s fehlgeschlagen: %v",
	KeyRebootCleanFailed: "⚠️ Alte Wiederaufnahmedaten konnten nicht gelöscht werden: %v",
	KeyRebootDone:        "✅ %d Sitzung(en) gespeichert, %d fehlgeschlagen, %d Kanal/Kanäle benachrichtigt.",
	KeyResumeMessage:     "✅ Ich bin zurück! %s wird fortgesetzt.",

	KeyGenericError: "❌ Etwas ist schiefgelaufen, bitte versuche es später erneut.",
	KeyOwnerOnly:    "⛔ Das darf nur der Bot-Besitzer.",
	KeyGuildOnly:    "⚠️ Dieser Befehl funktioniert nur auf einem Server.",

	KeyMissingPermission: "⛔ Dafür brauchst du die Berechtigung %s.",
	KeyPlaylistDeleted:   "🗑 Playlist %s gelöscht.",
	KeyPong:              "🏓 Pong! %dms",
	KeyHelpHeader:        "**Befehle** (Textpräfix `%s`)",
	KeyHistoryHeader:     "**Letzte Befehle**",
	KeyHistoryEmpty:      "Noch keine Befehle aufgezeichnet.",
}

var russian = map[string]string{
	KeyLoading:         "⌚ Загрузка... `[%s]`",
	KeyNowPlaying:      "▶️ Сейчас играет %s",
	KeyQueued:          "🎶 %s добавлен в очередь (позиция %d)",
	KeyPlaylistLoaded:  "🎶 Загружено треков: %d из %s",
	KeyPlaylistPartial: "⚠️ Загружено %d из %d треков, очередь заполнена (макс. %d)",
	KeyQueueFull:       "⚠️ Очередь заполнена (макс. %d)",
	KeyNoMatches:       "❌ Ничего не найдено по запросу `%s`",
	KeyLoadFailed:      "❌ Не удалось загрузить `%s`: %s",
	KeyResumed:         "✅ Воспроизведение продолжено.",
	KeyPlayHelp:        "⚠️ Укажите, что воспроизвести.\n`%[1]splay <URL>` - воспроизводит медиа по ссылке\n`%[1]splay <запрос>` - ищет первый результат по запросу",
	KeyPaused:          "⏸ Пауза.",
	KeyNothingPlaying:  "⚠️ Сейчас ничего не играет.",
	KeySkipped:         "⏭ Пропущено.",
	KeyStopped:         "⏹ Воспроизведение остановлено. Очередь очищена.",
	KeyVolumeSet:       "🔊 Громкость: %d.",
	KeyVolumeLocked:    "🔒 Громкость на этом сервере заблокирована.",
	KeyVolumeRange:     "⚠️ Громкость должна быть от %d до %d.",
	KeyVolumeLockOn:    "🔒 Громкость заблокирована.",
	KeyVolumeLockOff:   "🔓 Громкость разблокирована.",
	KeyNotInVoice:      "⚠️ Сначала зайдите в голосовой канал.",
	KeyQueueEmpty:      "Очередь пуста.",
	KeyQueueHeader:     "**Сейчас играет:** %s\n**Далее (%d):**",
	KeyQueueMore:       "...и ещё %d",

	KeyPlaylistStart:    "Загружаю плейлист %s",
	KeyPlaylistNotFound: "⚠️ Этот плейлист больше не существует.",
	KeyPlaylistSaved:    "💾 Сохранено треков: %d в плейлист %s",
	KeyPlaylistNone:     "На этом сервере нет сохранённых плейлистов.",
	KeyPlaylistPick:     "Выберите плейлист",
	KeyPlaylistEmpty:    "⚠️ Нечего сохранять.",
	KeyPlaylistName:     "⚠️ Укажите название плейлиста.",

	KeyRebootAnnounce:    "🔄 Перезапускаюсь для обслуживания. Музыка скоро продолжится.",
	KeyRebootError:       "⚠️ Перезапускаюсь для обслуживания, но не смог сохранить очередь. Извините!",
	KeyRebootStoreFailed: "❌ Не удалось сохранить сервер %s: %v",
	KeyRebootCleanFailed: "⚠️ Не удалось удалить старые данные: %v",
	KeyRebootDone:        "✅ Сохранено сессий: %d, ошибок: %d, оповещено каналов: %d.",
	KeyResumeMessage:     "✅ Я вернулся! Продолжаю %s.",

	KeyGenericError: "❌ Что-то пошло не так, попробуйте позже.",
	KeyOwnerOnly:    "⛔ Это может сделать только владелец бота.",
	KeyGuildOnly:    "⚠️ Эта команда работает только на сервере.",

	KeyMissingPermission: "⛔ Для этого нужно право «%s».",
	KeyPlaylistDeleted:   "🗑 Плейлист %s удалён.",
	KeyPong:              "🏓 Понг! %dms",
	KeyHelpHeader:        "**Команды** (текстовый префикс `%s`)",
	KeyHistoryHeader:     "**Последние команды**",
	KeyHistoryEmpty:      "Команд пока не было.",
}
