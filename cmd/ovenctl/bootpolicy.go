package main

import (
	"context"

	"ovencontroller/internal/config"
	"ovencontroller/internal/logger"
	"ovencontroller/internal/profile"
	"ovencontroller/internal/store"
)

// applyBootPolicy implements spec.md §7.1's store-integrity decision: a bad
// signature at boot must be reformatted (installing default profiles) or
// the process must carry on with no active profile, never silently treat a
// corrupt image as a normal empty catalog. This host has no console at boot
// to prompt interactively, so cfg.AutoReformatOnBadSignature stands in for
// the confirm/refuse answer; refusing leaves the image untouched and the
// catalog empty, exactly as declining the prompt would on the console build.
//
// A valid signature with zero records (first-ever boot, or the result of an
// "e fmt" reformat) is always seeded, independent of the flag: that path
// never saw a bad signature and needs no confirmation.
func applyBootPolicy(ctx context.Context, cfg config.Config, cat store.Catalog, log *logger.Logger) {
	if !cat.ValidateSignature() {
		if !cfg.AutoReformatOnBadSignature {
			log.Warnw("store signature invalid at boot, refusing to reformat", "err", store.ErrBadSignature, "hint", "confirm with auto_reformat_on_bad_signature or run e fmt")
			return
		}
		log.Warnw("store signature invalid at boot, reformatting per auto_reformat_on_bad_signature", "err", store.ErrBadSignature)
		if err := cat.Format(ctx); err != nil {
			log.Errorw("failed to reformat catalog after bad signature", "err", err)
			return
		}
		seedDefaults(ctx, cat, log)
		return
	}

	if n, _ := cat.Count(); n == 0 {
		seedDefaults(ctx, cat, log)
	}
}

func seedDefaults(ctx context.Context, cat store.Catalog, log *logger.Logger) {
	for _, p := range profile.Defaults() {
		if err := cat.Append(ctx, p); err != nil {
			log.Errorw("failed to seed default profile", "profile", p.Name, "err", err)
		}
	}
}
