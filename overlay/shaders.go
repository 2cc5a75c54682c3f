package overlay

// overlayVertSrc places a four-vertex strip in pixel coordinates with the
// origin at the top left of the window.
const overlayVertSrc = `
#version 410 core
out vec2 TexCoords;

uniform vec2 origin;
uniform vec2 size;
uniform vec2 screen;

void main() {
    const vec2 corners[4] = vec2[4](
        vec2(0.0, 0.0), vec2(1.0, 0.0), vec2(0.0, 1.0), vec2(1.0, 1.0)
    );
    vec2 c = corners[gl_VertexID];
    vec2 px = origin + c * size;
    vec2 ndc = vec2(px.x / screen.x * 2.0 - 1.0, 1.0 - px.y / screen.y * 2.0);
    gl_Position = vec4(ndc, 0.0, 1.0);
    TexCoords = c;
}
` + "\x00"

const overlayFragSrc = `
#version 410 core
out vec4 FragColor;

in vec2 TexCoords;

uniform sampler2D panel;

void main() {
    FragColor = texture(panel, TexCoords);
}
` + "\x00"
