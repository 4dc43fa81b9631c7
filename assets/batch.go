package assets

import (
	"slices"

	"github.com/mandykoh/go-parallel"
)

type decodeResult struct {
	Tex RawTextureData
	Err error
}

// DecodeTextures decodes every job on up to maxWorkers goroutines. Workers only write their own
// result slot and the maps are built on the calling goroutine once all workers return, so no
// locking is needed. Every key ends up in exactly one of the two returned maps.
func DecodeTextures(jobs map[TextureKey]string, maxWorkers int) (map[TextureKey]RawTextureData, map[TextureKey]error) {
	return decodeTexturesWith(jobs, maxWorkers, DecodeTexture)
}

func decodeTexturesWith(jobs map[TextureKey]string, maxWorkers int, decode func(path string) (RawTextureData, error)) (map[TextureKey]RawTextureData, map[TextureKey]error) {

	keys := make([]TextureKey, 0, len(jobs))
	for k := range jobs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	results := make([]decodeResult, len(keys))
	if len(keys) > 0 {

		workerCount := max(1, min(len(keys), maxWorkers))
		parallel.RunWorkers(workerCount, func(workerNum, workerCount int) {
			for i := workerNum; i < len(keys); i += workerCount {
				tex, err := decode(jobs[keys[i]])
				results[i] = decodeResult{Tex: tex, Err: err}
			}
		})
	}

	texs := make(map[TextureKey]RawTextureData, len(keys))
	errs := make(map[TextureKey]error)
	for i, k := range keys {

		if results[i].Err != nil {
			errs[k] = results[i].Err
			continue
		}

		texs[k] = results[i].Tex
	}

	return texs, errs
}
