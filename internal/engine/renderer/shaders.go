package renderer

const vertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;
layout (location = 3) in vec4 aColor;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec2 vTexCoord;
out vec4 vColor;

void main() {
    vTexCoord = aTexCoord;
    vColor = aColor;
    gl_Position = uViewProj * uModel * vec4(aPosition, 1.0);
}
`

// The interpolate path is the fixed-function combine
// previous*primary + texture*(1-primary) on unit 1, where previous is unit 0
// modulated by the primary color.
const fragmentShader = `#version 410 core

in vec2 vTexCoord;
in vec4 vColor;

uniform int uMode;
uniform sampler2D uTexture0;
uniform sampler2D uTexture1;

out vec4 FragColor;

void main() {
    if (uMode == 0) {
        FragColor = vColor;
        return;
    }

    vec4 previous = texture(uTexture0, vTexCoord) * vColor;
    if (uMode == 1) {
        FragColor = previous;
        return;
    }

    vec3 night = texture(uTexture1, vTexCoord).rgb;
    FragColor = vec4(mix(night, previous.rgb, vColor.rgb), previous.a);
}
`
